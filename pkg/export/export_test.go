package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
)

func fixture() dayplan.Plan {
	return dayplan.New().
		Append(2, item.Item{ID: "d", Title: "Dinner", TimeOfDay: item.Evening}).
		Append(1, item.Item{ID: "l", Title: "Louvre", Subtitle: "guided", TimeOfDay: item.Morning}).
		Append(1, item.Item{ID: "w", Title: "Walk_about", TimeOfDay: item.Flexible}).
		SetMemory(1, "Rainy day")
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := Markdown(&buf, fixture(), Options{
		Title: "Paris",
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	want := "# Paris\n" +
		"\n## Day 1 - 01/03/2026\n\n" +
		"- [Morning] Louvre - guided\n" +
		"- Walk\\_about\n" +
		"\n_Notes: Rainy day_\n" +
		"\n## Day 2 - 02/03/2026\n\n" +
		"- [Evening] Dinner\n"
	assert.Equal(t, want, buf.String())
}

func TestMarkdownUndatedEmptyDay(t *testing.T) {
	var buf bytes.Buffer
	plan := dayplan.New().AddDay()
	require.NoError(t, Markdown(&buf, plan, Options{}))
	assert.Equal(t, "# Itinerary\n\n## Day 1\n", buf.String())
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, fixture(), Options{Title: "Paris"}))
	out := buf.String()
	assert.Contains(t, out, "<h1>Paris</h1>")
	assert.Contains(t, out, "<h2>Day 1</h2>")
	assert.Contains(t, out, "<li>[Morning] Louvre - guided</li>")
	assert.Contains(t, out, "<li>Walk_about</li>")
	assert.Contains(t, out, "<em>Notes: Rainy day</em>")
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	err := Terminal(&buf, fixture(), Options{Title: "Paris"}, "notty", 60)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "Day 1")
	assert.Contains(t, out, "Louvre")
	assert.Contains(t, out, "Rainy day")

	assert.Error(t, Terminal(&buf, fixture(), Options{}, "no-such-style", 60))
}
