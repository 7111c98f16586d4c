package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/middleware/logger"

	"bazaar/internal/config"
	"bazaar/internal/http/handlers"
	applog "bazaar/internal/log"
	"bazaar/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.L().Fatal().Err(err).Msg("load config")
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.L().Warn().Err(err).Str("path", cfg.LogFile).Msg("could not open log file")
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Init(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: out})

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		applog.L().Fatal().Err(err).Str("dsn", cfg.DBDSN).Msg("open store")
	}
	defer db.Close()

	if cfg.Seed {
		if err := repos.Seed(context.Background(), db); err != nil {
			applog.L().Fatal().Err(err).Msg("seed store")
		}
	}

	deps := handlers.NewDeps(db, cfg)
	app := handlers.NewApp(deps, logger.New(logger.Config{Output: out}))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		applog.L().Info().Str("action", "server.shutdown").Send()
		_ = app.Shutdown()
	}()

	applog.L().Info().Str("action", "server.start").Str("port", cfg.Port).Int("enrich_workers", cfg.EnrichWorkers).Send()
	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.L().Fatal().Err(err).Msg("listen")
	}
}
