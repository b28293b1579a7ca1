// Package mcpserver exposes cybermod operations as MCP tools over stdio or
// streamable HTTP.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/platform/logging"
	"github.com/louisbranch/pound-of-flesh/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	serverName    = "pound-of-flesh"
	serverVersion = "0.1.0"

	// TransportStdio serves one client on stdin/stdout.
	TransportStdio = "stdio"
	// TransportHTTP serves streamable HTTP sessions.
	TransportHTTP = "http"
)

// NewServer registers every cybermod tool on a new MCP server.
func NewServer(h Handlers) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, ClassifyTool(), h.Classify())
	mcp.AddTool(server, IsInstallableTool(), h.IsInstallable())
	mcp.AddTool(server, SlotsTool(), h.Slots())
	mcp.AddTool(server, InstalledModsTool(), h.InstalledMods())
	mcp.AddTool(server, MissingPrerequisitesTool(), h.MissingPrerequisites())
	mcp.AddTool(server, ValidateTool(), h.Validate())
	mcp.AddTool(server, ResolveOutcomeTool(), h.ResolveOutcome())
	mcp.AddTool(server, OverclockEffectTool(), h.OverclockEffect())
	mcp.AddTool(server, ResolveSkillwareTool(), h.ResolveSkillware())
	mcp.AddTool(server, InstallTool(), h.Install())
	mcp.AddTool(server, RemoveTool(), h.Remove())
	mcp.AddTool(server, OverclockTool(), h.Overclock())
	mcp.AddTool(server, SanitySaveTool(), h.SanitySave())
	return server
}

// Serve runs server on the named transport until ctx is cancelled.
func Serve(ctx context.Context, server *mcp.Server, transport, httpAddr string, logger *zap.Logger) error {
	if server == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	logger = logging.OrNop(logger)
	switch strings.ToLower(strings.TrimSpace(transport)) {
	case "", TransportStdio:
		return serveTransport(ctx, server, &mcp.StdioTransport{})
	case TransportHTTP:
		return serveHTTP(ctx, server, httpAddr, logger)
	default:
		return fmt.Errorf("unsupported transport %q (valid: stdio, http)", transport)
	}
}

func serveTransport(ctx context.Context, server *mcp.Server, transport mcp.Transport) error {
	err := server.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, server *mcp.Server, addr string, logger *zap.Logger) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()
	logger.Info("MCP HTTP server listening", zap.String("addr", listener.Addr().String()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP server: %w", err)
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP: %w", err)
	}
}
