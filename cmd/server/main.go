package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docukit/approval-system/internal/api"
	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
	"github.com/docukit/approval-system/internal/core/service"
	"github.com/docukit/approval-system/internal/core/state"
	"github.com/docukit/approval-system/internal/infrastructure/storage/file"
	"github.com/docukit/approval-system/internal/infrastructure/storage/memory"
	"github.com/docukit/approval-system/internal/infrastructure/storage/sqlite"
	"github.com/docukit/approval-system/internal/pkg/config"
	"github.com/docukit/approval-system/pkg/logger"

	"github.com/oklog/ulid/v2"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("storage init failed")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("storage close failed")
		}
	}()

	admin := domain.Credential{
		ID:       ulid.Make().String(),
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Role:     domain.RoleAdmin,
	}
	container := state.NewContainer(store, admin, log)
	if err := container.Init(ctx); err != nil {
		// Recoverable: the aggregate lives in memory for this session.
		log.Warn().Err(err).Msg("initial state write failed, continuing in memory")
	}

	analytics := service.NewAnalyticsService(store, log)
	identity := service.NewIdentityService(container, analytics, log)
	workflow := service.NewWorkflowService(container, analytics, log)

	e := api.NewRouter(api.Deps{
		Identity:  identity,
		Workflow:  workflow,
		Analytics: analytics,
		Store:     store,
		Log:       log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown error")
	}
	if err := container.Flush(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("final state flush failed")
	}
}

// openStore builds the configured KV storage driver.
func openStore(cfg *config.Config) (ports.KVStore, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return sqlite.Open(cfg.Storage.SQLitePath)
	case "memory":
		return memory.New(), nil
	default:
		return file.New(cfg.Storage.DataDir)
	}
}
