package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nairamart/catalog-service/config"
	"github.com/nairamart/catalog-service/internal/cache"
	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/handlers"
	"github.com/nairamart/catalog-service/internal/merch"
	"github.com/nairamart/catalog-service/internal/middleware"
	"github.com/nairamart/catalog-service/internal/upstream"
	"github.com/nairamart/catalog-service/internal/upstream/ratelimit"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting catalog service")

	baseURL := config.GetUpstreamURL()
	if baseURL == "" {
		logger.Fatal().Msg("COMMERCE_API_URL not set")
	}

	var tokens *upstream.TokenSource
	if cfg.Upstream.ClientID != "" {
		tokens = upstream.NewTokenSource(upstream.ClientCredentialsRefresh(
			baseURL, cfg.Upstream.ClientID, cfg.Upstream.ClientSecret))
	}

	client := upstream.New(upstream.Options{
		BaseURL: baseURL,
		Timeout: cfg.Upstream.Timeout,
		RateLimit: &ratelimit.PartialConfig{
			RequestsPerSecond: &cfg.Upstream.RequestsPerSecond,
			MaxRetries:        &cfg.Upstream.MaxRetries,
			InitialBackoff:    &cfg.Upstream.InitialBackoff,
			MaxBackoff:        &cfg.Upstream.MaxBackoff,
		},
		Tokens: tokens,
		Logger: *logger,
	})

	normalizer := catalog.NewNormalizer(nil)
	deriver := merch.NewDeriver()
	catalogCache := cache.New(client, normalizer, cache.Options{
		TTL:               cfg.Cache.TTL,
		WarmupConcurrency: cfg.Cache.WarmupConcurrency,
		LoadTimeout:       cfg.Cache.LoadTimeout,
		Logger:            *logger,
	})

	ctx := context.Background()
	if err := catalogCache.Warmup(ctx); err != nil {
		// Warmup failure is not fatal; the first request reloads.
		logger.Warn().Err(err).Msg("Cache warmup incomplete")
	}

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.New(catalogCache, client, normalizer, deriver, *logger)

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	v1.Use(middleware.APIKeyMiddleware(cfg.Security.APIKey))
	v1.Use(middleware.RateLimitMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.Security.RequestsPerSecond,
		BurstSize:         cfg.Security.BurstSize,
	}))
	h.Register(v1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "catalog-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(middleware.RequestID())
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Msg("HTTP request")
	})
}
