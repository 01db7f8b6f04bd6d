package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"audio-compliance-pipeline/internal/app"
	"audio-compliance-pipeline/internal/config"
	"audio-compliance-pipeline/internal/events"
	apihttp "audio-compliance-pipeline/internal/http"
	"audio-compliance-pipeline/internal/observability"
	"audio-compliance-pipeline/internal/pipeline"
	"audio-compliance-pipeline/internal/service/audit"
	anthropicaudit "audio-compliance-pipeline/internal/service/audit/anthropic"
	auditmock "audio-compliance-pipeline/internal/service/audit/mock"
	"audio-compliance-pipeline/internal/service/store"
	storemock "audio-compliance-pipeline/internal/service/store/mock"
	s3store "audio-compliance-pipeline/internal/service/store/s3"
	"audio-compliance-pipeline/internal/service/transcribe"
	awstranscribe "audio-compliance-pipeline/internal/service/transcribe/aws"
	transcribemock "audio-compliance-pipeline/internal/service/transcribe/mock"
)

func main() {
	// Local development convenience; ignored when no .env file exists.
	_ = godotenv.Load()

	cfg := config.Load()
	application := app.New(cfg)
	logger := application.Logger

	if err := application.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start application")
	}
	defer application.Shutdown()

	// Kafka publisher with separate topics for transcript and audit events
	publisher := events.New(&events.Config{
		Enabled:         cfg.Kafka.Enabled,
		Brokers:         cfg.Kafka.Brokers,
		TopicTranscript: cfg.Kafka.TopicTranscript,
		TopicAudit:      cfg.Kafka.TopicAudit,
		Principal:       cfg.Kafka.Principal,
	})
	defer publisher.Close()

	objectStore, transcriber := buildTranscriptionStack(cfg, logger)
	reviewer := buildReviewer(cfg, logger)

	dispatcher := pipeline.NewDispatcher(cfg, objectStore, transcriber, publisher, logger)
	auditor := pipeline.NewAuditHandler(cfg, objectStore, reviewer, publisher, logger)

	obsServer := observability.NewServer(cfg.Service.MetricsAddr)
	obsServer.Start()

	router := apihttp.NewRouter(application, dispatcher, auditor, objectStore)
	server := &http.Server{
		Addr:         ":" + cfg.Service.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Service.HTTPPort).Msg("Intake API started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("Shutting down HTTP servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Intake API shutdown error")
	}
	if err := obsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Observability server shutdown error")
	}
}

// buildTranscriptionStack selects the object store and transcription
// adapter for the configured provider. The mock pair keeps the service
// runnable without cloud credentials.
func buildTranscriptionStack(cfg *config.Configuration, logger zerolog.Logger) (store.ObjectStore, transcribe.Adapter) {
	switch cfg.Transcription.Provider {
	case "aws":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Storage.AWSRegion))
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load AWS configuration")
		}
		return s3store.New(awsCfg), awstranscribe.New(awsCfg)
	case "mock":
		logger.Warn().Msg("Using mock storage and transcription providers")
		return storemock.New(), transcribemock.New()
	default:
		logger.Fatal().Str("provider", cfg.Transcription.Provider).Msg("Unknown transcription provider")
		return nil, nil
	}
}

// buildReviewer selects the compliance reviewer for the configured provider.
func buildReviewer(cfg *config.Configuration, logger zerolog.Logger) audit.Reviewer {
	switch cfg.Audit.Provider {
	case "anthropic":
		if cfg.Audit.AnthropicAPIKey == "" {
			logger.Fatal().Msg("ANTHROPIC_API_KEY is required for the anthropic audit provider")
		}
		return anthropicaudit.New(cfg.Audit.AnthropicAPIKey, cfg.Audit.Model)
	case "mock":
		logger.Warn().Msg("Using mock compliance reviewer")
		return auditmock.New()
	default:
		logger.Fatal().Str("provider", cfg.Audit.Provider).Msg("Unknown audit provider")
		return nil
	}
}
