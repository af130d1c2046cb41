package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerPlanResource(srv, svc)
	registerSelectionResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerPlanResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tripbook://plan",
		"Day Plan",
		mcp.WithResourceDescription("The whole itinerary, day by day, with notes and sync state."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.ShowPlan(ctx, "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerSelectionResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tripbook://selection",
		"Selected Products",
		mcp.WithResourceDescription("Products selected for the trip with quantities and the total."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.Selection(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"tripbook://days/{day}",
		"Day",
		mcp.WithTemplateDescription("Entries and notes of a single day."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := readDay(ctx, svc, request.Params.Arguments["day"])
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func readDay(ctx context.Context, svc *Service, arg any) (*DayDTO, error) {
	raw := fmt.Sprint(arg)
	if list, ok := arg.([]string); ok && len(list) > 0 {
		raw = list[0]
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 {
		return nil, fmt.Errorf("invalid day %q", raw)
	}
	plan, err := svc.ShowPlan(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, d := range plan.Days {
		if d.Day == day {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("day %d is not planned", day)
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
