package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/SubrataD27/vaani/adapters/bhashini"
	"github.com/SubrataD27/vaani/adapters/llm"
	"github.com/SubrataD27/vaani/adapters/speech"
	"github.com/SubrataD27/vaani/adapters/stt"
	"github.com/SubrataD27/vaani/internal/api"
	"github.com/SubrataD27/vaani/internal/auth"
	"github.com/SubrataD27/vaani/internal/websocket"
	"github.com/SubrataD27/vaani/repository"
	"github.com/SubrataD27/vaani/usecase"
)

func main() {
	// .env is optional; real deployments configure the environment directly
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	auth.LoadSecretFromEnv()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize adapters. Without credentials the server runs against
	// mock services so the demo stays usable offline.
	mock := speech.NewMockLanguageService(logger)

	var (
		detector   repository.LanguageDetector = mock
		translator repository.Translator       = mock
		recognizer repository.SpeechToText     = mock
		speaker    repository.TextToSpeech     = mock
		assistant  repository.LegalAssistant   = llm.NewMockAssistant()
	)

	if bhashiniConfig := bhashini.NewConfigFromEnv(); bhashiniConfig.APIKey != "" {
		client, err := bhashini.NewClient(bhashiniConfig, logger)
		if err != nil {
			logger.Fatal("invalid Bhashini configuration", zap.Error(err))
		}
		detector = client
		translator = client
		recognizer = client
		speaker = client
		logger.Info("Using Bhashini language services")
	}

	if os.Getenv("VAANI_STT_PROVIDER") == "google" {
		recognizer = stt.NewGoogleSpeechToText(logger)
		logger.Info("Using Google Cloud Speech-to-Text")
	}

	if geminiConfig := llm.NewGeminiConfigFromEnv(); geminiConfig.APIKey != "" {
		gemini, err := llm.NewGeminiAssistant(geminiConfig, logger)
		if err != nil {
			logger.Fatal("invalid Gemini configuration", zap.Error(err))
		}
		assistant = gemini
		logger.Info("Using Gemini legal assistant")
	}

	// Initialize usecase services
	orchestrator := usecase.NewOrchestrator(detector, translator, recognizer, speaker, assistant, logger)
	sessions := usecase.NewSessionManager(orchestrator, logger)
	sessions.StartCleanup()
	defer sessions.StopCleanup()

	// Initialize WebSocket hub and API routes
	hub := websocket.NewHub(logger)
	api.InitRoutes(e, sessions, hub, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("VaaNi server started", zap.String("port", port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
