package help

import (
	"testing"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/stretchr/testify/assert"
)

func TestMarkdownListsBindings(t *testing.T) {
	groups := [][]key.Binding{
		{key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))},
		{key.NewBinding(key.WithKeys("z")), key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))},
	}
	m := New(60, 40, groups)

	md := m.markdown()
	assert.Contains(t, md, "# Keys")
	assert.Contains(t, md, "- `u` undo")
	assert.Contains(t, md, "- `q` quit")
	assert.NotContains(t, md, "`z`", "bindings without help text are skipped")

	assert.NoError(t, m.err)
	assert.Contains(t, m.View(), "undo")
}

func TestSetSizeClampsToMinimum(t *testing.T) {
	m := New(5, 2, nil)
	assert.Equal(t, 32, m.width)
	assert.Equal(t, 8, m.height)
}
