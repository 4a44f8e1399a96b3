// server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ViniZap4/todo-server/config"
	"github.com/ViniZap4/todo-server/filesystem"
	httphandlers "github.com/ViniZap4/todo-server/http"
	"github.com/ViniZap4/todo-server/logging"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "0.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info", "json", os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	store := filesystem.NewStore(cfg.DBFile, log)
	server := httphandlers.NewServer(store.Load(), store, log)

	app, err := server.App(httphandlers.Options{
		PublicDir: cfg.PublicDir,
		Origins:   cfg.Origins(),
		BodyLimit: cfg.BodyLimit,
		TokenHash: cfg.APITokenHash,
		Version:   Version,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.Addr()).
		Str("db_file", store.Path()).
		Str("version", Version).
		Msgf("Server starting on http://localhost:%s", cfg.Port)

	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
