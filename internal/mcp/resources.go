// ABOUTME: MCP resource implementations for ecoeats.
// ABOUTME: Provides ecoeats://dashboard, ecoeats://recent, and ecoeats://weekly resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dashboardURI = "ecoeats://dashboard"
	recentURI    = "ecoeats://recent"
	weeklyURI    = "ecoeats://weekly"
)

func (s *Server) registerResources() {
	// ecoeats://dashboard - counters, streak, quick tip and thought of the day
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "EcoEats Dashboard",
		Description: "Totals, streak, a quick tip and the thought of the day",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// ecoeats://recent - last 10 waste entries and meals
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Entries",
		Description: "Last 10 food waste entries and meals",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// ecoeats://weekly - per-day totals for the last seven days
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         weeklyURI,
		Name:        "Weekly Trends",
		Description: "Daily food waste totals and meal counts for the last seven days",
		MIMEType:    "application/json",
	}, s.handleWeeklyResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d, err := s.tracker.Dashboard(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return jsonResource(dashboardURI, d)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	waste, err := s.tracker.ListWaste(s.user.ID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list waste: %w", err)
	}
	meals, err := s.tracker.ListMeals(s.user.ID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	return jsonResource(recentURI, map[string]interface{}{
		"waste": waste,
		"meals": meals,
	})
}

func (s *Server) handleWeeklyResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	days, err := s.tracker.WeeklyTrends(s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trends: %w", err)
	}

	var waste, meals int
	for _, d := range days {
		waste += d.Waste
		meals += d.Meals
	}

	return jsonResource(weeklyURI, map[string]interface{}{
		"days": days,
		"totals": map[string]int{
			"waste": waste,
			"meals": meals,
		},
	})
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
