package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/eplanremote/eplan"
)

// Server wires the automation client into an MCP server.
type Server struct {
	client *eplan.Client
	mcp    *mcp.Server
}

// New creates the MCP server around an automation client.
func New(client *eplan.Client, version string) *Server {
	s := &Server{client: client}
	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "eplan-remote",
		Title:   "EPLAN Remote Automation",
		Version: version,
	}, nil)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is canceled or the peer
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// MCP returns the underlying server for embedding in other transports.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}
