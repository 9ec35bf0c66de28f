package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	httpadapter "github.com/bigimanishi-bit/tarot-app-sub000/internal/adapters/http"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/adapters/llm/openairesp"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/app"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/config"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/prompts"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	promptSet, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		logger.Error("failed to load prompts", "error", err)
		os.Exit(1)
	}

	llmClient := openairesp.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		cfg.LLMAPIKey,
		cfg.LLMBaseURL,
		cfg.LLMModel,
		logger,
	)

	svc := app.NewReadingService(llmClient, promptSet, cfg.LLMModel, nil)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
