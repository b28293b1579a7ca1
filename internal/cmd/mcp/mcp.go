// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	"github.com/louisbranch/pound-of-flesh/internal/platform/config"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/bootstrap"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/mcpserver"
)

// Config holds MCP command configuration.
type Config struct {
	Stack     bootstrap.Config
	HTTPAddr  string `env:"POUND_OF_FLESH_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"POUND_OF_FLESH_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	if err := config.ParseEnvWithLookup(&cfg, lookup); err != nil {
		return Config{}, err
	}

	bootstrap.RegisterFlags(fs, &cfg.Stack)
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the cybermod stack and serves its tools until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	stack, err := bootstrap.Open(ctx, cfg.Stack, nil)
	if err != nil {
		return err
	}
	defer func() { _ = stack.Close() }()

	server := mcpserver.NewServer(mcpserver.Handlers{
		Backend: stack.Service,
		Dice:    stack.Dice,
		Locale:  cfg.Stack.Locale,
	})
	return mcpserver.Serve(ctx, server, cfg.Transport, cfg.HTTPAddr, stack.Logger)
}
