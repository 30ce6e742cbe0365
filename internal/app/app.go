package app

import (
	"log/slog"

	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
	"github.com/trebuchet-org/farm-deploy/internal/usecase"
)

// App is the main application container
type App struct {
	Config    *config.RuntimeConfig
	Log       *slog.Logger
	Bootstrap *usecase.Bootstrap
}

// NewApp creates a new application instance
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	bootstrap *usecase.Bootstrap,
) (*App, error) {
	return &App{
		Config:    cfg,
		Log:       log,
		Bootstrap: bootstrap,
	}, nil
}
