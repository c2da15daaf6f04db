package apiserver

import (
	"fmt"

	"github.com/kart-io/logger"
	"github.com/kart-io/version"

	"github.com/kart-io/haven/pkg/app"
)

const (
	appName        = "haven-apiserver"
	appDescription = `Haven API Server

The backend for the Haven recovery companion.

This server provides:
  - Journal entries, daily checklists, metrics, craving logs, and if-then plans
  - An AI recovery advisor grounded in a configurable guide document
  - AI-generated daily summaries with optional redis caching
  - JWT authentication over PostgreSQL or SQLite storage

Examples:
  # Start with default configuration
  haven-apiserver

  # Start against postgres
  haven-apiserver --storage.engine=postgres --postgres.host=db.internal

  # Use config file
  haven-apiserver -c /etc/haven/haven-apiserver.yaml

Configuration:
  Configuration can be provided via:
  - Command-line flags (highest priority)
  - Environment variables (prefix: HAVEN_APISERVER_)
  - Configuration file (YAML)
  - Default values (lowest priority)`
)

// NewApp creates the haven-apiserver application.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(appName),
		app.WithShortDescription("The Haven recovery companion API server"),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run initializes logging, assembles the server, and serves until shutdown.
func Run(opts *Options) error {
	opts.Log.AddInitialField("service.name", appName)
	opts.Log.AddInitialField("service.version", version.Get().GitVersion)
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	logger.Infow("Starting haven-apiserver",
		"version", version.Get().GitVersion,
		"storage", opts.Storage.Engine,
		"llm", opts.LLM.Provider,
	)

	srv, err := NewServer(opts)
	if err != nil {
		return err
	}
	return srv.Run()
}
