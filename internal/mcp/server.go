// ABOUTME: MCP server exposing the tracker to AI assistants over stdio.
// ABOUTME: Every tool acts on behalf of the single user the server was started for.
package mcp

import (
	"context"

	"github.com/harperreed/ecoeats/internal/models"
	"github.com/harperreed/ecoeats/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
	user      *models.User
}

// NewServer creates an MCP server acting as user.
func NewServer(tr *tracker.Tracker, user *models.User) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ecoeats",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   tr,
		user:      user,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
