package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/handler"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/metrics"
	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/server"
	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/internal/store"
	"github.com/MKhiriev/menu-predictor/internal/workers"
	"github.com/MKhiriev/menu-predictor/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// startupTimeout bounds connecting to storages and the default model check.
const startupTimeout = 30 * time.Second

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).WithDefaults()
	printBuildInfo(build)

	log := logger.NewLogger("menu-predictor")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	if err = run(build, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

// run builds every component and serves until shutdown. Resources opened
// here are released before it returns, whatever the outcome.
func run(build models.AppBuildInfo, cfg *config.StructuredConfig, log *logger.Logger) error {
	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	storages, err := store.NewStorages(startCtx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	shell, err := mlshell.New(cfg.ML, log, metrics.RecordBreakerState)
	if err != nil {
		return fmt.Errorf("error creating ML shell: %w", err)
	}

	services, err := service.NewServices(storages, shell, build, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	if err = services.PredictionService.CheckDefaultModel(startCtx); err != nil {
		return fmt.Errorf("default model check failed: %w", err)
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	background := workers.NewWorkers(services, cfg.Workers, log)

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer()
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
