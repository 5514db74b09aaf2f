package mcp

import (
	"context"

	"impact-mcp/internal/config"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const serverName = "impact-mcp"

// Server exposes the estimator and the case paperwork as MCP tools.
// It holds configuration only; every tool call is computed from its own arguments.
type Server struct {
	cfg    *config.AppConfig
	server *sdkmcp.Server
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(cfg *config.AppConfig, version string) *Server {
	s := &Server{cfg: cfg}
	s.server = sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)
	s.registerTools()
	return s
}

// Start runs the JSON-RPC loop over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Msg("MCP Server starting Stdio loop")
	err := s.server.Run(ctx, &sdkmcp.StdioTransport{})
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("MCP Server stopped with error")
		return err
	}
	log.Info().Msg("MCP Server stopped")
	return nil
}
