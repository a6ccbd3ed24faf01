package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/commission-fees/internal/api/handlers"
	"github.com/dvloznov/commission-fees/internal/api/middleware"
	"github.com/dvloznov/commission-fees/internal/config"
	"github.com/dvloznov/commission-fees/internal/feeconfig"
	"github.com/dvloznov/commission-fees/internal/fees"
	"github.com/dvloznov/commission-fees/internal/gcsuploader"
	"github.com/dvloznov/commission-fees/internal/loader"
	"github.com/dvloznov/commission-fees/internal/logger"
	"github.com/dvloznov/commission-fees/internal/pipeline"
)

func main() {
	envErr := config.LoadEnv()
	settings := config.Load()

	port := flag.String("port", config.GetEnv("PORT", "8080"), "HTTP server port (or set PORT env)")
	flag.Parse()

	log := logger.NewWithLevel(logger.ParseLevel(settings.LogLevel))
	if envErr != nil {
		log.Warn().Err(envErr).Msg("Could not load .env file")
	}

	deps := pipeline.Dependencies{
		Source: loader.New(gcsuploader.NewGCSStorageService(settings.GCSEndpoint)),
		Config: feeconfig.NewHTTPProvider(settings.ConfigBaseURL, nil, settings.HTTPTimeout),
		Weeks:  fees.ISOWeeks{},
	}

	mux := http.NewServeMux()
	handlers.Register(mux, handlers.NewFeesHandler(deps, log))

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.RequestID(log)(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: settings.RunTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", *port).
			Str("config_url", settings.ConfigBaseURL).
			Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
