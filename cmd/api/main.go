package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/niranjan1960/banos-dessert/internal/app"
	"github.com/niranjan1960/banos-dessert/pkg/logger"
	"github.com/niranjan1960/banos-dessert/pkg/shutdown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	cfg, err := app.LoadConfig()
	log := logger.New(logger.Options{Service: "banos-api", Env: cfg.Env, Level: cfg.LogLevel, AddSource: true})
	if err != nil {
		log.Error("invalid configuration", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	router, cleanup, err := app.NewServer(ctx, cfg, log)
	if err != nil {
		log.Error("init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http starting", slog.String("addr", srv.Addr), slog.String("prefix", cfg.MountPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		return srv.Shutdown(stopCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", slog.Any("err", err))
		cleanup()
		os.Exit(1)
	}
	log.Info("bye")
}
