package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"lcmtv/domain/repository"
	"lcmtv/infrastructure/cache"
	youtubeclient "lcmtv/infrastructure/clients/youtube"
	"lcmtv/infrastructure/configuration"
	"lcmtv/infrastructure/logger"
	"lcmtv/infrastructure/persistence"
	"lcmtv/infrastructure/pubsub"
	httpHandler "lcmtv/interfaces/http"
	"lcmtv/server"
	"lcmtv/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	store, err := initiateStore()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Database initialization failed")
		os.Exit(1)
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without import cache")
		redisClient = nil
	}
	importCache := cache.NewImportCache(redisClient)

	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without notifications")
		pubSubClient = nil
	}
	var notifier repository.INotifier
	if pubSubClient != nil {
		notifier = pubsub.NewVideoNotifier(pubSubClient, configuration.C.Pubsub.Topic)
	}

	youtubeConfig := configuration.GetYouTubeConfig()
	if youtubeConfig.APIKey == "" {
		logger.GetLogger().Error("YouTube API key not configured; import surface cannot start")
		os.Exit(1)
	}
	source, err := youtubeclient.NewClient(ctx, &youtubeclient.Config{
		APIKey:    youtubeConfig.APIKey,
		UserAgent: youtubeConfig.UserAgent,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to initialize YouTube client")
		os.Exit(1)
	}

	ingestionUseCase := usecase.NewIngestionUseCase(source, store, notifier, importCache)
	importHandler := httpHandler.NewImportHandler(ingestionUseCase)

	router := server.InitiateRouter(importHandler)

	// Notification worker: consumes new-video events and fans out rows.
	if pubSubClient != nil && configuration.C.Pubsub.SubID != "" {
		notificationUseCase := usecase.NewNotificationUseCase(store)
		sub, err := pubsub.GetSubscription(pubSubClient, configuration.C.Pubsub.SubID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Notification worker not started")
		} else {
			g.Go(func() error {
				if err := notificationUseCase.Run(ctx, sub); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		}
	}

	logger.GetLogger().WithField("port", app.Port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", app.Port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateStore wires the configured store backend: PostgreSQL by default,
// MySQL via gorm when data.source is "mysql".
func initiateStore() (repository.IVideoStore, error) {
	switch configuration.C.Data.Source {
	case "mysql":
		db, err := persistence.NewMySQLDB()
		if err != nil {
			return nil, err
		}
		if err := persistence.EnsureMySQLContentSchema(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("Failed ensuring content schema")
		}
		return persistence.NewVideoRepositoryMySQL(db), nil
	default:
		db, err := persistence.NewPostgreSQLDB()
		if err != nil {
			return nil, err
		}
		if err := persistence.EnsureContentSchema(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("Failed ensuring content schema")
		}
		return persistence.NewVideoRepository(db), nil
	}
}
