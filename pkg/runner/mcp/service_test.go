package mcp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/planner"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(planner.New(planner.Options{}))
}

func dayIDs(dto *PlanDTO, day int) []string {
	out := []string{}
	for _, d := range dto.Days {
		if d.Day != day {
			continue
		}
		for _, it := range d.Items {
			out = append(out, it.ID)
		}
	}
	return out
}

func TestServiceAddSelectionPlacesItem(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.AddSelection(ctx, AddSelectionOptions{ID: "h1", Title: "Hotel (2 nights)", Category: "hotel", Price: 120})
	require.NoError(t, err)
	assert.Equal(t, []string{"h1"}, dayIDs(dto, 1))
	assert.Equal(t, string(item.SelectionSourced), dto.Days[0].Items[0].Provenance)
	assert.Equal(t, "●", dto.Days[0].Items[0].Glyph)
	assert.True(t, dto.AutoSync)

	sel, err := svc.Selection(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Count)
	assert.InDelta(t, 120.0, sel.Total, 0.001)

	_, err = svc.AddSelection(ctx, AddSelectionOptions{})
	assert.Error(t, err)
}

func TestServiceMoveAndReorder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p := svc.Planner
	p.AddManual(ctx, item.Item{ID: "a", Title: "A"}, 1)
	p.AddManual(ctx, item.Item{ID: "b", Title: "B"}, 1)
	p.AddManual(ctx, item.Item{ID: "c", Title: "C"}, 2)

	dto, err := svc.Reorder(ctx, 1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, dayIDs(dto, 1))

	_, err = svc.Reorder(ctx, 1, 0, 5)
	assert.Error(t, err)

	dto, err = svc.MoveItem(ctx, "a", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, dayIDs(dto, 1))
	assert.Equal(t, []string{"c", "a"}, dayIDs(dto, 2))

	_, err = svc.MoveItem(ctx, "missing", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)

	dto, err = svc.BulkMove(ctx, 2, 1, []string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, dayIDs(dto, 1))

	dto, ok, err := svc.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"c", "a"}, dayIDs(dto, 2))
}

func TestServiceRepeatRefusesSourced(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.AddSelection(ctx, AddSelectionOptions{ID: "t1", Title: "Tour", Category: "tour"})
	require.NoError(t, err)
	svc.Planner.AddManual(ctx, item.Item{ID: "m1", Title: "Walk"}, 1)

	_, _, err = svc.Repeat(ctx, "t1", "2")
	assert.Error(t, err)

	dto, added, err := svc.Repeat(ctx, "m1", "2 3")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, added)
	assert.Equal(t, []string{"m1"}, dayIDs(dto, 3))
}

func TestServiceWithoutPlanner(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.ShowPlan(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoPlanner)
}

func callTool(t *testing.T, svc *Service, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var handler server.ToolHandlerFunc
	for _, tool := range tools(svc) {
		if tool.Tool.Name == name {
			handler = tool.Handler
		}
	}
	require.NotNil(t, handler, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content %T", res.Content[0])
	return text.Text
}

func TestToolsDriveThePlanner(t *testing.T) {
	svc := newTestService(t)

	res := callTool(t, svc, "add_selection", map[string]any{
		"id": "d1", "title": "Dinner cruise", "category": "dining", "time_of_day": "Evening", "price": 80,
	})
	require.False(t, res.IsError, resultText(t, res))

	res = callTool(t, svc, "set_memory", map[string]any{"day": 1, "text": "  dress code  "})
	require.False(t, res.IsError)

	res = callTool(t, svc, "show_plan", nil)
	var plan PlanDTO
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &plan))
	require.Len(t, plan.Days, 1)
	assert.Equal(t, "dress code", plan.Days[0].Memory)
	assert.Equal(t, "Evening", plan.Days[0].Items[0].TimeOfDay)

	res = callTool(t, svc, "set_auto_sync", map[string]any{"enabled": false})
	require.False(t, res.IsError)
	assert.False(t, svc.Planner.AutoSync())

	res = callTool(t, svc, "redo", nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "nothing to redo", resultText(t, res))

	res = callTool(t, svc, "move_item", map[string]any{"id": "d1"})
	assert.True(t, res.IsError)
}

func TestToolsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, tool := range tools(newTestService(t)) {
		assert.False(t, seen[tool.Tool.Name], tool.Tool.Name)
		seen[tool.Tool.Name] = true
	}
	for _, name := range []string{"add_selection", "remove_selection", "move_item", "reorder", "bulk_move", "repeat", "set_memory", "add_day", "undo", "redo", "show_plan", "progress", "set_auto_sync"} {
		assert.True(t, seen[name], name)
	}
}

func TestReadDayResource(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	svc.Planner.AddManual(ctx, item.Item{ID: "a", Title: "A"}, 1)

	day, err := readDay(ctx, svc, []string{"1"})
	require.NoError(t, err)
	assert.Equal(t, 1, day.Day)
	assert.Len(t, day.Items, 1)

	_, err = readDay(ctx, svc, "7")
	assert.Error(t, err)
	_, err = readDay(ctx, svc, "zero")
	assert.Error(t, err)
}

func TestRunnerHTTPShutsDownWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	listening := make(chan net.Addr, 1)
	r := Runner{
		Planner:         planner.New(planner.Options{}),
		Transport:       TransportHTTP,
		HTTPListenAddr:  "127.0.0.1:0",
		OnHTTPListening: func(addr net.Addr) { listening <- addr },
	}

	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()

	select {
	case addr := <-listening:
		assert.NotEmpty(t, addr.String())
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunnerRejectsBadConfig(t *testing.T) {
	assert.Error(t, Runner{}.Do(context.Background()))

	r := Runner{Planner: planner.New(planner.Options{}), Transport: "pigeon"}
	assert.Error(t, r.Do(context.Background()))

	r = Runner{Planner: planner.New(planner.Options{}), Transport: TransportHTTP, HTTPServerCert: "cert.pem"}
	assert.Error(t, r.Do(context.Background()))
}
