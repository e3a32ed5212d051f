package mcp

import (
	"context"
	"encoding/json"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dashboard"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dates"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests: parses input, calls the service, formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// DashboardInput is the input for get_dashboard.
type DashboardInput struct {
	Range string `json:"range,omitempty" jsonschema:"Time range: all, week or month (default all)"`
}

// GetDashboardTool returns the MCP tool handler for get_dashboard.
func (h *Handler) GetDashboardTool() func(context.Context, *mcp.CallToolRequest, DashboardInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DashboardInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.Dashboard(ctx, dashboard.ParseRange(in.Range))), nil, nil
	}
}

// ListWorkoutsInput is the input for list_workouts.
type ListWorkoutsInput struct {
	Type     string `json:"type,omitempty" jsonschema:"Filter by workout type (e.g. Strength, Cardio); All or empty for any"`
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date, inclusive (YYYY-MM-DD)"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"End date, inclusive (YYYY-MM-DD)"`
}

// ListWorkoutsTool returns the MCP tool handler for list_workouts.
func (h *Handler) ListWorkoutsTool() func(context.Context, *mcp.CallToolRequest, ListWorkoutsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ListWorkoutsInput) (*mcp.CallToolResult, any, error) {
		params := workouts.ListParams{Type: in.Type}
		if in.FromDate != "" {
			from, ok := dates.Normalize(in.FromDate)
			if !ok {
				return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
			}
			params.From = from
		}
		if in.ToDate != "" {
			to, ok := dates.Normalize(in.ToDate)
			if !ok {
				return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
			}
			params.To = to
		}
		return jsonResult(h.service.ListWorkouts(ctx, params)), nil, nil
	}
}

// ListGoalsTool returns the MCP tool handler for list_goals.
func (h *Handler) ListGoalsTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.ListGoals(ctx)), nil, nil
	}
}

// GetProfileTool returns the MCP tool handler for get_profile.
func (h *Handler) GetProfileTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.Profile(ctx)), nil, nil
	}
}

// ListAchievementsTool returns the MCP tool handler for list_achievements.
func (h *Handler) ListAchievementsTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.Achievements(ctx)), nil, nil
	}
}
