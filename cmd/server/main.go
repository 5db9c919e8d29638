// @title           Link-in-bio Profile API
// @version         1.0
// @description     Username directory, page customization, links and public page resolution.
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"linkbio/internal/api"
	"linkbio/internal/config"
	"linkbio/internal/database"
	"linkbio/internal/logger"
	"linkbio/internal/storage"
	"linkbio/internal/sweeper"
	"linkbio/internal/websocket"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	_ "linkbio/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.L

	if cfg.JWT.Secret == "" {
		log.Error("jwt.secret must be set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(log, cfg.DB.Source); err != nil {
		log.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		log.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		log.Error("failed to ping database", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("connected to database")

	signer := storage.NewSigner(cfg.AppHost, cfg.Storage.Secret, cfg.Storage.URLTTL, cfg.Storage.UploadTTL)
	localStorage, err := storage.NewLocalStorage(cfg.Storage.Path, signer)
	if err != nil {
		log.Error("failed to initialize blob storage", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("blob storage ready", slog.String("path", cfg.Storage.Path))

	wsHub := websocket.NewHub(log)
	go wsHub.Run()
	defer wsHub.Stop()

	store := database.NewStore(dbpool, wsHub)

	sweep := sweeper.New(store, localStorage, cfg.Storage.OrphanGrace, log)
	if err := sweep.Start(cfg.Storage.SweepSchedule); err != nil {
		log.Error("failed to schedule orphan sweep", slog.Any("error", err))
		os.Exit(1)
	}
	defer sweep.Stop()

	server := api.NewServer(cfg, store, localStorage, wsHub, log)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting http server", slog.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
