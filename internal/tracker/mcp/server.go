package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the tracker tools: dashboard, workouts, goals,
// profile and achievements. Served over stdio by cmd/tracker_mcp and at /mcp by the service.
func NewServer(service *ContextService) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitness-tracker",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Returns dashboard stats for a range (all, week, month): workouts this week, totals per type, cardio minutes, strength sets and reps, current and best streak, active goal. Use when you need a training summary.",
	}, h.GetDashboardTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_workouts",
		Description: "Returns logged workouts, newest first. Optional filters: type (e.g. Strength, Cardio), from_date and to_date (YYYY-MM-DD, inclusive).",
	}, h.ListWorkoutsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_goals",
		Description: "Returns goals with progress percentage, days left and status. Active goals come first, ordered by target date.",
	}, h.ListGoalsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_profile",
		Description: "Returns the user profile (name, age, height, weight, target weight, focus) with BMI and greeting.",
	}, h.GetProfileTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_achievements",
		Description: "Returns the unlocked achievement badges and how many exist in total.",
	}, h.ListAchievementsTool())

	return s
}
