package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"chatrelay-backend/internal/config"
	"chatrelay-backend/internal/handlers"
	"chatrelay-backend/internal/observability/metrics"
	"chatrelay-backend/internal/router"
	"chatrelay-backend/internal/services"
	"chatrelay-backend/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting chat relay", "env", cfg.Env)

	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; chat requests will fail until it is configured")
	}

	relayMetrics := metrics.NewRelayMetrics(prometheus.DefaultRegisterer)

	completionService := services.NewCompletionService(
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		cfg.OpenAIBaseURL,
		cfg.UpstreamTimeout,
		logger,
	)
	weatherService := services.NewWeatherService(cfg.WeatherBaseURL, cfg.WeatherTimeout, logger)

	chatHandler := handlers.NewChatHandler(completionService, relayMetrics, logger)
	weatherHandler := handlers.NewWeatherHandler(weatherService, logger)
	staticHandler := handlers.NewStaticHandler(cfg.StaticDir, logger)

	r := router.New(chatHandler, weatherHandler, staticHandler, relayMetrics, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
		// WriteTimeout must outlast the 60s upstream deadline.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Info("chat relay listening", "addr", fmt.Sprintf("http://localhost:%s", cfg.Port), "model", cfg.OpenAIModel)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
