package app

import (
	"log/slog"
	"os"

	"flowex/internal/infra"
	"flowex/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence.
type Bootstrap struct {
	Config *infra.Config
	Store  *storage.Store
}

// NewBootstrap creates a new Bootstrap instance.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration, wires logging, and opens the audit store.
func (b *Bootstrap) Initialize() error {
	slog.Info("bootstrapping Flowex...")

	configPath := os.Getenv("FLOWEX_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	store, err := storage.NewStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	b.Store = store
	slog.Info("audit store initialized")

	return nil
}
