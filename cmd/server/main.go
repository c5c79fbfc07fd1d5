package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/handler"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/server"
	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/internal/store"
	"github.com/MKhiriev/go-vault-gate/internal/workers"
	"github.com/MKhiriev/go-vault-gate/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("vault-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.HTTPAddress).
		Dur("grant_duration", cfg.GrantDuration).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, config.DB{DSN: cfg.DSN}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	version := buildVersion
	if version == "" {
		version = cfg.Version
	}
	buildInfo := models.NewAppBuildInfo(version, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	clk := clock.Real()
	services, err := service.NewServices(storages, *cfg, buildInfo, clk, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(services, *cfg, clk, log).Run(ctx)

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version())
	fmt.Printf("Build date: %s\n", info.Date())
	fmt.Printf("Build commit: %s\n", info.Commit())
}
