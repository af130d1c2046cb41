package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tripbook/pkg/dayplan"
)

func init() {
	color.NoColor = true
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TRIPBOOK_CONFIG_PATH", dir)
	t.Setenv("TRIPBOOK_PATH", filepath.Join(dir, "data"))
	t.Setenv("TRIPBOOK_BACKEND", "diskv")
	t.Setenv("TRIPBOOK_TRIP", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "tripbook %s", strings.Join(args, " "))
	return out
}

func showPlan(t *testing.T, args ...string) dayplan.Plan {
	t.Helper()
	out := mustRun(t, append([]string{"plan", "show", "--json"}, args...)...)
	var plan dayplan.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan), out)
	return plan
}

func ids(plan dayplan.Plan, day int) []string {
	out := []string{}
	for _, it := range plan.Items(day) {
		out = append(out, it.ID)
	}
	return out
}

func TestSelectAndArrangeAcrossInvocations(t *testing.T) {
	setupEnv(t)

	mustRun(t, "select", "add", "Hotel", "(2", "nights)", "--id", "h1", "--category", "hotel", "--price", "200")
	mustRun(t, "select", "add", "Hotel", "B", "--id", "h2", "--category", "lodging")
	mustRun(t, "plan", "add", "Pack", "bags", "--id", "m1", "--day", "1")

	plan := showPlan(t)
	assert.Equal(t, []string{"h1", "m1"}, ids(plan, 1))
	assert.Equal(t, []string{"h2"}, ids(plan, 3))

	mustRun(t, "plan", "reorder", "1", "2", "1")
	assert.Equal(t, []string{"m1", "h1"}, ids(showPlan(t), 1))

	mustRun(t, "plan", "move", "m1", "3")
	plan = showPlan(t)
	assert.Equal(t, []string{"h1"}, ids(plan, 1))
	assert.Equal(t, []string{"h2", "m1"}, ids(plan, 3))

	mustRun(t, "undo")
	assert.Equal(t, []string{"m1", "h1"}, ids(showPlan(t), 1))
	mustRun(t, "redo")
	assert.Equal(t, []string{"h2", "m1"}, ids(showPlan(t), 3))

	out := mustRun(t, "history")
	assert.Contains(t, out, "reorder")
	assert.Contains(t, out, "move")
}

func TestTripsAreIsolated(t *testing.T) {
	setupEnv(t)

	mustRun(t, "--trip", "paris", "plan", "add", "Louvre", "--id", "l1", "--day", "1")
	mustRun(t, "--trip", "rome", "plan", "add", "Colosseum", "--id", "c1", "--day", "1")

	assert.Equal(t, []string{"l1"}, ids(showPlan(t, "--trip", "paris"), 1))
	assert.Equal(t, []string{"c1"}, ids(showPlan(t, "--trip", "rome"), 1))

	out := mustRun(t, "info")
	assert.Contains(t, out, "paris")
	assert.Contains(t, out, "rome")
}

func TestSyncOffFreezesEntries(t *testing.T) {
	setupEnv(t)

	mustRun(t, "select", "add", "City", "tour", "--id", "t1", "--category", "tour")
	out := mustRun(t, "sync", "off")
	assert.Contains(t, out, "Auto-sync is off.")

	mustRun(t, "select", "rm", "t1")
	assert.Equal(t, []string{"t1"}, ids(showPlan(t), 1), "frozen entries stay after the product is removed")

	out = mustRun(t, "sync")
	assert.Contains(t, out, "off")
}

func TestRepeatMemoryAndExport(t *testing.T) {
	setupEnv(t)

	mustRun(t, "plan", "add", "Breakfast", "--id", "b1", "--day", "1", "--time", "morning")
	mustRun(t, "plan", "repeat", "b1", "2,", "3")
	mustRun(t, "plan", "memory", "2", "Museum", "day")

	plan := showPlan(t)
	assert.Equal(t, []string{"b1"}, ids(plan, 3))
	assert.Equal(t, "Museum day", plan.Memories[2])

	out := mustRun(t, "export", "--start", "2026-5-28", "--title", "Lisbon")
	assert.Contains(t, out, "# Lisbon")
	assert.Contains(t, out, "Day 2 - 29/05/2026")
	assert.Contains(t, out, "Museum day")

	out = mustRun(t, "export", "--render", "--title", "Lisbon")
	assert.Contains(t, out, "Lisbon")
	assert.Contains(t, out, "Breakfast")
	_, err := run(t, "export", "--render", "--html")
	assert.Error(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "trip.html")
	mustRun(t, "export", "--html", "--out", file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h2>")
}

func TestErrors(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "plan", "move", "nope", "2")
	assert.Error(t, err)

	_, err = run(t, "plan", "reorder", "0", "1", "2")
	assert.Error(t, err)

	_, err = run(t, "undo")
	assert.EqualError(t, err, "nothing to undo")

	_, err = run(t, "sync", "maybe")
	assert.Error(t, err)

	mustRun(t, "select", "add", "Tour", "--id", "t1", "--category", "tour")
	_, err = run(t, "plan", "repeat", "t1", "2")
	assert.Error(t, err)
}

func TestJSONOutput(t *testing.T) {
	setupEnv(t)
	mustRun(t, "select", "add", "Dinner", "--id", "d1", "--category", "dining", "--price", "40", "--qty", "2")

	out := mustRun(t, "progress", "--json")
	var progress struct {
		Milestones []dayplan.Milestone `json:"milestones"`
		Total      float64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &progress))
	require.Len(t, progress.Milestones, 3)
	assert.True(t, progress.Milestones[0].Done)
	assert.InDelta(t, 80.0, progress.Total, 0.001)

	out = mustRun(t, "plan", "show", "--json", "--day", "9")
	assert.Contains(t, out, `"error"`)
}

func TestStartParsing(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "export", "--start", "someday")
	assert.Error(t, err)
}
