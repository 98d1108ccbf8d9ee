// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, model client)
// that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caseprep/docket/internal/config"
	"github.com/caseprep/docket/internal/llm"
	"github.com/caseprep/docket/pkg/database"
	"github.com/caseprep/docket/pkg/lifecycle"
	"github.com/caseprep/docket/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Model is nil when no model endpoint is configured; classification and
// arrangement then run on their rule tiers alone.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Model     *llm.Client
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	var model *llm.Client
	if cfg.Model.Configured() {
		model, err = llm.New(&cfg.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("model client init failed: %w", err)
		}
		logger.Info("model tier enabled", "model", cfg.Model.Model)
	} else {
		logger.Info("model tier disabled, rule tiers only")
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Model:     model,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and storage hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
