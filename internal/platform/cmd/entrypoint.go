// Package cmd holds the startup sequence shared by every command main.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/platform/config"
	"github.com/louisbranch/pound-of-flesh/internal/platform/otel"
	"github.com/louisbranch/pound-of-flesh/internal/platform/timeouts"
)

const defaultOTelShutdownTimeout = timeouts.Shutdown

// Service identifiers for command startup telemetry and CLI naming consistency.
const (
	ServiceCybermod = "cybermod"
	ServiceMCP      = "mcp"
	ServiceSeed     = "seed"
)

// DotEnvPath is the optional dotenv file loaded before env parsing.
const DotEnvPath = ".env"

// Parser builds a command config from flags and an environment lookup.
type Parser[T any] func(fs *flag.FlagSet, args []string, lookup func(string) (string, bool)) (T, error)

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
	// Lookup replaces os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Execute loads .env, parses args into a config, and runs the command with
// telemetry until it returns or SIGINT/SIGTERM arrives.
func Execute[T any](service string, fs *flag.FlagSet, args []string, parse Parser[T], run func(context.Context, T) error) error {
	return ExecuteWithOptions(context.Background(), service, RunOptions{}, fs, args, parse, run)
}

// ExecuteWithOptions is Execute with a parent context and options.
func ExecuteWithOptions[T any](ctx context.Context, service string, options RunOptions, fs *flag.FlagSet, args []string, parse Parser[T], run func(context.Context, T) error) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if parse == nil || run == nil {
		return errors.New("parse and run functions are required")
	}
	if err := config.LoadDotEnv(DotEnvPath); err != nil {
		return err
	}
	lookup := options.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg, err := parse(fs, args, lookup)
	if err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunWithTelemetryAndOptions(ctx, service, options, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

// RunWithTelemetry configures observability and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions configures observability and executes a service run loop.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
