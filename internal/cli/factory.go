// Package cli parses the command line and wires the App each command runs against.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"todo/internal/app"
	"todo/internal/backend/gemini"
	"todo/internal/config"
	"todo/internal/expand"
	"todo/internal/kv"
	"todo/internal/store"
)

// NewApp builds the production App: the snapshot in cfg.Dir is loaded once,
// and the Gemini backend is attached only when a credential is configured.
// Without one, expansion degrades to adding the goal as a single task.
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app.App, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := store.New(kv.NewFileStorage(cfg.Dir), cfg.SnapshotKey, store.WithLogger(logger))
	s.Load()

	var gen expand.Generator
	if cfg.HasCredential() {
		client, err := gemini.New(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		gen = client
	}

	return app.New(s, expand.New(gen, cfg.Model, logger)), nil
}
