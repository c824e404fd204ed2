// Package commands implements the datacharts subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/datacharts-labs/datacharts/internal/config"
	"github.com/datacharts-labs/datacharts/internal/engine"
	"github.com/datacharts-labs/datacharts/pkg/sandbox"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store logger in context.
type loggerKey struct{}

// WithConfig stores the loaded config in the command context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores the logger in the command context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newProcessor builds the engine facade from the context configuration.
func newProcessor(ctx context.Context) *engine.Processor {
	cfg := GetConfig(ctx)
	return engine.New(engine.Config{
		Limits: sandbox.Limits{MaxExecutionTime: cfg.Limits.MaxExecutionTime},
		Logger: GetLogger(ctx),
	})
}
