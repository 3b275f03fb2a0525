package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/placescout/placescout/internal/config"
	"github.com/placescout/placescout/internal/handlers"
	"github.com/placescout/placescout/internal/telemetry"
	"github.com/placescout/placescout/places"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logConfig := telemetry.DefaultLogConfig()
	logConfig.Level = telemetry.LogLevel(cfg.LogLevel)
	logConfig.Format = cfg.LogFormat
	logConfig.Output = cfg.LogOutput
	if err := telemetry.InitGlobalLogger(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := telemetry.GetGlobalLogger()

	endpoints := places.DefaultEndpoints()
	if cfg.GeocodeURL != "" {
		endpoints.Geocode = cfg.GeocodeURL
	}
	if cfg.SearchURL != "" {
		endpoints.Search = cfg.SearchURL
	}
	if cfg.DetailURL != "" {
		endpoints.Detail = cfg.DetailURL
	}
	if cfg.CheckInURL != "" {
		endpoints.CheckIn = cfg.CheckInURL
	}

	client := places.NewClient(places.ClientConfig{
		APIKey:    cfg.APIKey,
		Sensor:    cfg.Sensor,
		Endpoints: endpoints,
		Logger:    logger.Logger,
	})

	router := handlers.NewRouter(client)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting placescout server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
