//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/farm-deploy/internal/adapters"
	"github.com/trebuchet-org/farm-deploy/internal/config"
	"github.com/trebuchet-org/farm-deploy/internal/logging"
	"github.com/trebuchet-org/farm-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployFarming,
		usecase.NewVerifyResources,
		usecase.NewBootstrap,

		// App
		NewApp,
	)
	return nil, nil, nil
}
