package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "RPS Referee"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server exposes the referee tools over MCP.
type Server struct {
	mcpServer *mcp.Server
}

// New creates an MCP server with every referee tool registered.
func New(ref Referee) (*Server, error) {
	if ref == nil {
		return nil, fmt.Errorf("referee is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerRefereeTools(mcpServer, ref)
	return &Server{mcpServer: mcpServer}, nil
}

// Serve runs the server on stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	return err
}
