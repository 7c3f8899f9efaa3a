//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/gyrostable/clpkit/internal/adapters"
	"github.com/gyrostable/clpkit/internal/config"
	"github.com/gyrostable/clpkit/internal/logging"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.NewLogger,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveCompiler,
		usecase.NewPlanCompile,
		usecase.ProvideCompileTask,
		usecase.NewCompile,
		usecase.NewListNetworks,
		usecase.NewShowNetwork,
		usecase.NewCheckNetwork,
		usecase.NewShowExplorer,
		usecase.NewVerifyContract,
		usecase.NewPreparePool,

		// App
		NewApp,
	)
	return nil, nil
}
