package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/config"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/delivery"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/middleware"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/sentiment"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/session"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/usecase"
)

func main() {
	logger := setupLogger("info")

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	logger.Info("Starting Recsys Frontend Service...")
	logger.Infof("Recsys backend target: %s (timeout %s)", cfg.BackendBaseURL, cfg.BackendTimeout)

	storage, err := session.OpenStorage(cfg.SessionDBPath)
	if err != nil {
		logger.Fatalf("Failed to open session storage at %s: %v", cfg.SessionDBPath, err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Errorf("Error closing session storage: %v", err)
		} else {
			logger.Info("Session storage closed.")
		}
	}()

	recsysClient := clients.NewRecsysHTTPClient(cfg.BackendBaseURL, cfg.BackendTimeout, logger)

	store := session.NewStore(recsysClient, storage, logger)
	initCtx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout)
	store.Initialize(initCtx)
	cancel()

	reviewLog := sentiment.NewLog()

	homeUseCase := usecase.NewHomeUseCase(recsysClient, logger)
	catalogUseCase := usecase.NewCatalogUseCase(recsysClient, logger)
	usersUseCase := usecase.NewUsersUseCase(recsysClient, logger)
	sentimentUseCase := usecase.NewSentimentUseCase(recsysClient, reviewLog, logger)
	modalController := usecase.NewContextPanelController(recsysClient, logger)

	pagesHandler := delivery.NewPagesHandler(store, homeUseCase, catalogUseCase, usersUseCase, modalController, logger)
	sessionHandler := delivery.NewSessionHandler(store, logger)
	sentimentHandler := delivery.NewSentimentHandler(sentimentUseCase, logger)

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		pagesHandler.RegisterRoutes(api)
		sessionHandler.RegisterRoutes(api)
		sentimentHandler.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:    cfg.ListenPort,
		Handler: router,
	}

	go func() {
		logger.Infof("Frontend service listening on %s", cfg.ListenPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
		logger.Info("HTTP server stopped serving.")
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Signal listener started.")

	<-quit
	logger.Warn("Shutdown signal received...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Frontend service shut down gracefully.")
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
