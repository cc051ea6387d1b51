// Package cmd contains the CLI subcommands.
package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/pinegen/internal/ai"
	"github.com/pinegen/internal/config"
	"github.com/pinegen/internal/generation"
	"github.com/pinegen/internal/store"
)

// loadConfig reads and validates the configuration named by the global
// --config flag.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildService creates the generation service for the configured default
// provider, honoring an optional --ai override.
func buildService(c *cli.Context, cfg *config.Config) (*generation.Service, error) {
	provider := cfg.General.DefaultAI
	if name := c.String("ai"); name != "" {
		provider = name
	}

	aiCfg, ok := cfg.AI[provider]
	if !ok {
		return nil, fmt.Errorf("configuration for AI provider %s not found", provider)
	}

	connector, err := ai.NewConnector(provider, aiCfg)
	if err != nil {
		return nil, err
	}

	return generation.NewService(connector, nil), nil
}

// openStore connects to the configured database. A missing URL is not an
// error: callers run without persistence.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg.Database.URL == "" {
		log.Warn().Msg("No database configured, running without persistence")
		return nil, nil
	}
	return store.Connect(ctx, cfg.Database.URL)
}
