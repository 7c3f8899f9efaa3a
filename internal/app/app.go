package app

import (
	"log/slog"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Progress usecase.ProgressSink

	// Use cases
	ResolveCompiler *usecase.ResolveCompiler
	PlanCompile     *usecase.PlanCompile
	Compile         *usecase.Compile
	ListNetworks    *usecase.ListNetworks
	ShowNetwork     *usecase.ShowNetwork
	CheckNetwork    *usecase.CheckNetwork
	ShowExplorer    *usecase.ShowExplorer
	VerifyContract  *usecase.VerifyContract
	PreparePool     *usecase.PreparePool
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	progress usecase.ProgressSink,
	resolveCompiler *usecase.ResolveCompiler,
	planCompile *usecase.PlanCompile,
	compile *usecase.Compile,
	listNetworks *usecase.ListNetworks,
	showNetwork *usecase.ShowNetwork,
	checkNetwork *usecase.CheckNetwork,
	showExplorer *usecase.ShowExplorer,
	verifyContract *usecase.VerifyContract,
	preparePool *usecase.PreparePool,
) *App {
	return &App{
		Config:          cfg,
		Log:             log,
		Progress:        progress,
		ResolveCompiler: resolveCompiler,
		PlanCompile:     planCompile,
		Compile:         compile,
		ListNetworks:    listNetworks,
		ShowNetwork:     showNetwork,
		CheckNetwork:    checkNetwork,
		ShowExplorer:    showExplorer,
		VerifyContract:  verifyContract,
		PreparePool:     preparePool,
	}
}
