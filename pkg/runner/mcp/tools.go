package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/tripbook/pkg/item"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTools(tools(svc)...)
}

func tools(svc *Service) []server.ServerTool {
	return []server.ServerTool{
		showPlanTool(svc),
		progressTool(svc),
		addSelectionTool(svc),
		removeSelectionTool(svc),
		moveItemTool(svc),
		reorderTool(svc),
		bulkMoveTool(svc),
		repeatTool(svc),
		setMemoryTool(svc),
		addDayTool(svc),
		undoTool(svc),
		redoTool(svc),
		setAutoSyncTool(svc),
	}
}

func showPlanTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"show_plan",
		mcp.WithDescription("Show the day-by-day itinerary, optionally filtered by a search query."),
		mcp.WithString("query",
			mcp.Description("Optional case-insensitive text matched against titles, subtitles and notes."),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.ShowPlan(ctx, request.GetString("query", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func progressTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"progress",
		mcp.WithDescription("Report which planning milestones are done."),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		milestones, err := svc.Progress(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"milestones": milestones})
	}}
}

func addSelectionTool(svc *Service) server.ServerTool {
	categories := make([]string, 0, len(item.AllCategories()))
	for _, c := range item.AllCategories() {
		categories = append(categories, string(c))
	}
	tool := mcp.NewTool(
		"add_selection",
		mcp.WithDescription("Select a product for the trip. Selecting an id again bumps its quantity."),
		mcp.WithString("id",
			mcp.Description("Product identifier. Generated when omitted."),
		),
		mcp.WithString("title",
			mcp.Description("Product title, e.g. 'Hotel Lutetia (3 nights)'."),
		),
		mcp.WithString("subtitle",
			mcp.Description("Optional short detail shown next to the title."),
		),
		mcp.WithString("category",
			mcp.Description("Product category."),
			mcp.Enum(categories...),
		),
		mcp.WithString("time_of_day",
			mcp.Description("Preferred slot within the day."),
			mcp.Enum(string(item.Morning), string(item.Afternoon), string(item.Evening), string(item.Flexible)),
		),
		mcp.WithNumber("price",
			mcp.Description("Unit price."),
			mcp.Min(0),
		),
		mcp.WithNumber("quantity",
			mcp.Description("Units to select (default 1)."),
			mcp.Min(1),
		),
		mcp.WithNumber("day",
			mcp.Description("Day to place it on. Omit to let the planner choose."),
			mcp.Min(0),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID        string  `json:"id"`
			Title     string  `json:"title"`
			Subtitle  string  `json:"subtitle"`
			Category  string  `json:"category"`
			TimeOfDay string  `json:"time_of_day"`
			Price     float64 `json:"price"`
			Quantity  int     `json:"quantity"`
			Day       int     `json:"day"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddSelection(ctx, AddSelectionOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func removeSelectionTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"remove_selection",
		mcp.WithDescription("Remove a selected product and its itinerary entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Product identifier to remove."),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.RemoveSelection(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func moveItemTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"move_item",
		mcp.WithDescription("Move an itinerary entry to the end of another day."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to move."),
		),
		mcp.WithNumber("day",
			mcp.Required(),
			mcp.Description("Destination day."),
			mcp.Min(1),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := request.RequireInt("day")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.MoveItem(ctx, id, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func reorderTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"reorder",
		mcp.WithDescription("Move an entry to a new position within its day. Positions start at 0."),
		mcp.WithNumber("day", mcp.Required(), mcp.Description("Day to reorder."), mcp.Min(1)),
		mcp.WithNumber("from", mcp.Required(), mcp.Description("Current position."), mcp.Min(0)),
		mcp.WithNumber("to", mcp.Required(), mcp.Description("New position."), mcp.Min(0)),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Day  int `json:"day"`
			From int `json:"from"`
			To   int `json:"to"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.Reorder(ctx, args.Day, args.From, args.To)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func bulkMoveTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"bulk_move",
		mcp.WithDescription("Move several entries of one day to the end of another day, keeping their order."),
		mcp.WithNumber("source", mcp.Required(), mcp.Description("Day the entries are on."), mcp.Min(1)),
		mcp.WithNumber("dest", mcp.Required(), mcp.Description("Destination day."), mcp.Min(1)),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Entry identifiers to move."),
			mcp.WithStringItems(),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Source int      `json:"source"`
			Dest   int      `json:"dest"`
			IDs    []string `json:"ids"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.BulkMove(ctx, args.Source, args.Dest, args.IDs)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func repeatTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"repeat",
		mcp.WithDescription("Copy a manual or suggested entry onto other days."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry identifier to repeat.")),
		mcp.WithString("days",
			mcp.Required(),
			mcp.Description("Day numbers separated by commas or spaces, e.g. '2, 4 5'."),
		),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		days, err := request.RequireString("days")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, added, err := svc.Repeat(ctx, id, days)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if added == nil {
			added = []int{}
		}
		return toJSONResult(map[string]any{
			"added": added,
			"plan":  dto,
		})
	}}
}

func setMemoryTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"set_memory",
		mcp.WithDescription("Replace the notes of a day. An empty text clears them."),
		mcp.WithNumber("day", mcp.Required(), mcp.Description("Day to annotate."), mcp.Min(1)),
		mcp.WithString("text", mcp.Description("Note text.")),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := request.RequireInt("day")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetMemory(ctx, day, strings.TrimSpace(request.GetString("text", "")))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func addDayTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"add_day",
		mcp.WithDescription("Append an empty day to the itinerary."),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.AddDay(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func undoTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"undo",
		mcp.WithDescription("Undo the last itinerary edit."),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, ok, err := svc.Undo(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ok {
			return mcp.NewToolResultError("nothing to undo"), nil
		}
		return toJSONResult(dto)
	}}
}

func redoTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"redo",
		mcp.WithDescription("Redo the last undone itinerary edit."),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, ok, err := svc.Redo(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ok {
			return mcp.NewToolResultError("nothing to redo"), nil
		}
		return toJSONResult(dto)
	}}
}

func setAutoSyncTool(svc *Service) server.ServerTool {
	tool := mcp.NewTool(
		"set_auto_sync",
		mcp.WithDescription("Turn selection auto-sync on or off. Turning it off keeps current entries as manual ones."),
		mcp.WithBoolean("enabled", mcp.Required(), mcp.Description("Whether auto-sync is on.")),
	)
	return server.ServerTool{Tool: tool, Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		on, err := request.RequireBool("enabled")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetAutoSync(ctx, on)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
