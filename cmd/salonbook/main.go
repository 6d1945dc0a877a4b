package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mkalinina/salonbook/internal/buildinfo"
	"github.com/mkalinina/salonbook/internal/client/api"
	"github.com/mkalinina/salonbook/internal/client/cli"
	"github.com/mkalinina/salonbook/internal/client/config"
	"github.com/mkalinina/salonbook/internal/client/session"
	"github.com/mkalinina/salonbook/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	// A missing .env is fine, the defaults and real env still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	level := slog.LevelInfo
	if os.Getenv("SALONBOOK_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store, err := session.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}
	defer store.Close()

	client := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, store, logger)

	app := cli.NewApp(cfg, store, client, logger)
	app.Run(ctx)
}
