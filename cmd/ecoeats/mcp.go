// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/harperreed/ecoeats/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log waste and meals, manage goals and
challenges, and read your dashboard through a standardized protocol. The
server communicates via stdin/stdout and acts as the user chosen by --user,
the config username or $USER.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "ecoeats": {
        "command": "ecoeats",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

%s
AVAILABLE RESOURCES:

  ecoeats://dashboard   Counters, streak, tip and thought of the day
  ecoeats://recent      Recent waste entries and meals
  ecoeats://weekly      Last 7 days of waste and meals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(trk, currentUser)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	mcpCmd.Long = fmt.Sprintf(mcpCmd.Long, toolList(false))
	rootCmd.AddCommand(mcpCmd)
}

// toolList renders the MCP tool catalogue as an aligned help block.
func toolList(qualified bool) string {
	width := 18
	if qualified {
		width = len(mcp.ToolPrefix) + width
	}
	var sb strings.Builder
	for _, t := range mcp.Tools() {
		name := t.Name
		if qualified {
			name = t.QualifiedName()
		}
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, name, t.Summary)
	}
	return sb.String()
}
