package mcp

import (
	"log/slog"

	"github.com/gregorian-09/buildhotspot/internal/config"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	config *config.Config
	logger *slog.Logger
}

// NewDependencies constructs the dependency set, applying BHA_* environment
// overrides onto cfg the way the CLI adapter does.
func NewDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dependencies{
		config: config.ApplyEnvOverrides(cfg),
		logger: logger,
	}
}
