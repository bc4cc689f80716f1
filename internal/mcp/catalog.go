// ABOUTME: Catalogue of the MCP tools the ecoeats server exposes.
// ABOUTME: Registration, the CLI help text and the skill installer all read from it.
package mcp

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolPrefix is how Claude Code names tools from a server registered as "ecoeats".
const ToolPrefix = "mcp__ecoeats__"

// ToolInfo describes one MCP tool.
type ToolInfo struct {
	Name        string
	Summary     string // short form for CLI help
	Description string // sent to clients
}

// QualifiedName is the tool's name as seen by Claude Code.
func (t ToolInfo) QualifiedName() string {
	return ToolPrefix + t.Name
}

var catalog = []ToolInfo{
	{"log_waste", "Log wasted food (grams or millilitres)",
		"Record a wasted food item with its quantity in grams (solid) or millilitres (liquid)"},
	{"list_waste", "List recent waste entries",
		"List recent food waste entries, newest first"},
	{"delete_waste", "Delete a waste entry",
		"Delete a food waste entry by ID"},
	{"log_meal", "Log a meal and get a nutrition summary",
		"Record a meal; a nutrition summary is generated for it"},
	{"list_meals", "List recent meals",
		"List recent meals with their nutrition summaries"},
	{"set_goal", "Set a goal with generated recommendations",
		"Set a food waste reduction or healthy eating goal and get recommendations"},
	{"list_goals", "List goals",
		"List goals with recommendations and potential savings"},
	{"complete_goal", "Mark a goal completed",
		"Mark a goal as completed"},
	{"current_challenge", "Show or start this week's challenge",
		"Get this week's sustainability challenge, creating one if needed"},
	{"challenge_progress", "Record challenge progress",
		"Record progress (0-100) on a challenge"},
	{"complete_challenge", "Mark a challenge completed",
		"Mark a challenge as completed"},
	{"add_post", "Share a community post",
		"Share a post with the community hub"},
	{"list_posts", "Read recent community posts",
		"List recent community posts"},
	{"like_post", "Like a community post",
		"Like a community post"},
	{"check_in", "Check in and update the streak",
		"Check in for today and return the current streak and achievement"},
	{"get_tip", "Get a generated tip",
		"Generate a tip: quick, quote, notification, personal, sustainability, community or summary"},
}

// Tools returns the catalogue in registration order.
func Tools() []ToolInfo {
	out := make([]ToolInfo, len(catalog))
	copy(out, catalog)
	return out
}

// tool builds the SDK definition for a catalogued tool.
func tool(name string) *mcp.Tool {
	for _, t := range catalog {
		if t.Name == name {
			return &mcp.Tool{Name: t.Name, Description: t.Description}
		}
	}
	panic(fmt.Sprintf("mcp: tool %q is not in the catalogue", name))
}
