// ABOUTME: MCP tool implementations for ecoeats.
// ABOUTME: Logging waste and meals, goals, challenges, community posts, streak and tips.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/ecoeats/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, tool("log_waste"), s.handleLogWaste)
	mcp.AddTool(s.mcpServer, tool("list_waste"), s.handleListWaste)
	mcp.AddTool(s.mcpServer, tool("delete_waste"), s.handleDeleteWaste)
	mcp.AddTool(s.mcpServer, tool("log_meal"), s.handleLogMeal)
	mcp.AddTool(s.mcpServer, tool("list_meals"), s.handleListMeals)
	mcp.AddTool(s.mcpServer, tool("set_goal"), s.handleSetGoal)
	mcp.AddTool(s.mcpServer, tool("list_goals"), s.handleListGoals)
	mcp.AddTool(s.mcpServer, tool("complete_goal"), s.handleCompleteGoal)
	mcp.AddTool(s.mcpServer, tool("current_challenge"), s.handleCurrentChallenge)
	mcp.AddTool(s.mcpServer, tool("challenge_progress"), s.handleChallengeProgress)
	mcp.AddTool(s.mcpServer, tool("complete_challenge"), s.handleCompleteChallenge)
	mcp.AddTool(s.mcpServer, tool("add_post"), s.handleAddPost)
	mcp.AddTool(s.mcpServer, tool("list_posts"), s.handleListPosts)
	mcp.AddTool(s.mcpServer, tool("like_post"), s.handleLikePost)
	mcp.AddTool(s.mcpServer, tool("check_in"), s.handleCheckIn)
	mcp.AddTool(s.mcpServer, tool("get_tip"), s.handleGetTip)
}

// Tool input/output types

type logWasteInput struct {
	Item         string `json:"item" jsonschema:"Food item that was wasted"`
	Quantity     int    `json:"quantity" jsonschema:"Amount in grams for solids or millilitres for liquids"`
	QuantityType string `json:"quantity_type,omitempty" jsonschema:"solid (default) or liquid"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type idInput struct {
	ID int64 `json:"id" jsonschema:"Record ID"`
}

type logMealInput struct {
	Meal     string `json:"meal" jsonschema:"Description of the meal"`
	Calories *int   `json:"calories,omitempty" jsonschema:"Optional calorie estimate"`
}

type setGoalInput struct {
	Type string `json:"type" jsonschema:"Food Waste Reduction or Healthy Eating (aliases: waste, eating)"`
	Goal string `json:"goal" jsonschema:"The goal in your own words"`
}

type progressInput struct {
	ID       int64 `json:"id" jsonschema:"Challenge ID"`
	Progress int   `json:"progress" jsonschema:"Percent complete, 0 to 100"`
}

type addPostInput struct {
	Post string `json:"post" jsonschema:"Text to share"`
}

type tipInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"Kind of tip (default quick)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type entryOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type tipOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return 20
	}
	return n
}

// Tool handlers

func (s *Server) handleLogWaste(ctx context.Context, req *mcp.CallToolRequest, input logWasteInput) (*mcp.CallToolResult, entryOutput, error) {
	w, err := s.tracker.LogWaste(ctx, s.user.ID, tracker.WasteInput{
		Item:         input.Item,
		Quantity:     input.Quantity,
		QuantityType: input.QuantityType,
	})
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log waste: %w", err)
	}

	return nil, entryOutput{
		ID:      w.ID,
		Message: fmt.Sprintf("Logged %d %s of %s (ID: %d)", w.Quantity, w.Unit(), w.Item, w.ID),
	}, nil
}

func (s *Server) handleListWaste(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	entries, err := s.tracker.ListWaste(s.user.ID, limitOrDefault(input.Limit))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list waste: %w", err)
	}
	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No food waste logged."}, nil
	}
	return nil, map[string]interface{}{"waste": entries}, nil
}

func (s *Server) handleDeleteWaste(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.tracker.DeleteWaste(s.user.ID, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete waste entry: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted waste entry %d", input.ID)}, nil
}

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, any, error) {
	m, err := s.tracker.LogMeal(ctx, s.user.ID, tracker.MealInput{
		Description: input.Meal,
		Quantity:    input.Calories,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to log meal: %w", err)
	}
	return nil, map[string]interface{}{
		"id":        m.ID,
		"meal":      m.Description,
		"nutrition": m.Nutrition,
		"message":   fmt.Sprintf("Logged meal (ID: %d)", m.ID),
	}, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	meals, err := s.tracker.ListMeals(s.user.ID, limitOrDefault(input.Limit))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list meals: %w", err)
	}
	if len(meals) == 0 {
		return nil, map[string]interface{}{"message": "No meals logged."}, nil
	}
	return nil, map[string]interface{}{"meals": meals}, nil
}

func (s *Server) handleSetGoal(ctx context.Context, req *mcp.CallToolRequest, input setGoalInput) (*mcp.CallToolResult, any, error) {
	g, err := s.tracker.SetGoal(ctx, s.user.ID, input.Type, input.Goal)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set goal: %w", err)
	}
	return nil, map[string]interface{}{
		"goal":    g,
		"savings": g.Savings(),
	}, nil
}

func (s *Server) handleListGoals(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	goals, err := s.tracker.ListGoals(s.user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list goals: %w", err)
	}
	if len(goals) == 0 {
		return nil, map[string]interface{}{"message": "No goals set."}, nil
	}
	if input.Limit > 0 && len(goals) > input.Limit {
		goals = goals[:input.Limit]
	}
	return nil, map[string]interface{}{"goals": goals}, nil
}

func (s *Server) handleCompleteGoal(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	g, err := s.tracker.CompleteGoal(s.user.ID, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to complete goal: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Completed goal: %s", g.Goal)}, nil
}

func (s *Server) handleCurrentChallenge(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	c, created, err := s.tracker.CurrentChallenge(ctx, s.user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	return nil, map[string]interface{}{
		"challenge":      c,
		"days_remaining": c.DaysRemaining(s.tracker.Now()),
		"created":        created,
	}, nil
}

func (s *Server) handleChallengeProgress(ctx context.Context, req *mcp.CallToolRequest, input progressInput) (*mcp.CallToolResult, simpleOutput, error) {
	c, err := s.tracker.ChallengeProgress(s.user.ID, input.ID, input.Progress)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update challenge: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Challenge %d is %d%% complete", c.ID, c.Progress)}, nil
}

func (s *Server) handleCompleteChallenge(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	c, err := s.tracker.CompleteChallenge(s.user.ID, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to complete challenge: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Completed challenge %d", c.ID)}, nil
}

func (s *Server) handleAddPost(ctx context.Context, req *mcp.CallToolRequest, input addPostInput) (*mcp.CallToolResult, entryOutput, error) {
	p, err := s.tracker.AddPost(s.user.ID, input.Post)
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to add post: %w", err)
	}
	return nil, entryOutput{ID: p.ID, Message: fmt.Sprintf("Shared post (ID: %d)", p.ID)}, nil
}

func (s *Server) handleListPosts(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	posts, err := s.tracker.ListPosts(limitOrDefault(input.Limit))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, map[string]interface{}{"message": "No community posts yet."}, nil
	}
	return nil, map[string]interface{}{"posts": posts}, nil
}

func (s *Server) handleLikePost(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	likes, err := s.tracker.LikePost(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to like post: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Post %d now has %d likes", input.ID, likes)}, nil
}

func (s *Server) handleCheckIn(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	info, err := s.tracker.CheckIn(s.user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check in: %w", err)
	}
	return nil, map[string]interface{}{
		"streak":      info.Streak,
		"achievement": info.Achievement.String(),
		"message":     fmt.Sprintf("%d-day streak: %s", info.Streak, info.Achievement),
	}, nil
}

func (s *Server) handleGetTip(ctx context.Context, req *mcp.CallToolRequest, input tipInput) (*mcp.CallToolResult, tipOutput, error) {
	kind, ok := tracker.ParseTipKind(input.Kind)
	if !ok {
		return nil, tipOutput{}, fmt.Errorf("unknown tip kind: %s", input.Kind)
	}
	text, err := s.tracker.Tip(ctx, s.user.ID, kind)
	if err != nil {
		return nil, tipOutput{}, fmt.Errorf("failed to generate tip: %w", err)
	}
	return nil, tipOutput{Kind: string(kind), Text: text}, nil
}
