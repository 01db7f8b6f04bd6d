// Package config centralizes environment-sourced configuration. It is
// resolved once at process start and threaded into each component, so no
// component reads ambient globals directly.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Configuration holds all settings for the pipeline service.
type Configuration struct {
	Service       ServiceConfig
	Storage       StorageConfig
	Transcription TranscriptionConfig
	Audit         AuditConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// ServiceConfig identifies the process and its listen addresses.
type ServiceConfig struct {
	Principal   string
	HTTPPort    string
	MetricsAddr string
}

// StorageConfig names the buckets the pipeline watches and writes.
type StorageConfig struct {
	AudioUploadBucket       string
	TranscriptStorageBucket string
	AWSRegion               string
}

// TranscriptionConfig selects the transcription provider and its defaults.
type TranscriptionConfig struct {
	Provider     string // "aws" or "mock"
	LanguageCode string
	PollInterval time.Duration
	MaxWait      time.Duration
}

// AuditConfig selects the compliance reviewer and its model.
type AuditConfig struct {
	Provider        string // "anthropic" or "mock"
	Model           string
	AnthropicAPIKey string
	OutputPrefix    string
}

// KafkaConfig controls outcome event publishing.
type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	TopicTranscript string
	TopicAudit      string
	Principal       string
}

// ObservabilityConfig controls logging.
type ObservabilityConfig struct {
	LogLevel string
}

// Load reads the configuration from the environment, applying defaults.
func Load() *Configuration {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-audio-compliance")

	return &Configuration{
		Service: ServiceConfig{
			Principal:   principal,
			HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
		},
		Storage: StorageConfig{
			AudioUploadBucket:       envOrDefault("AUDIO_UPLOAD_BUCKET", "audio-uploads"),
			TranscriptStorageBucket: envOrDefault("TRANSCRIPT_STORAGE_BUCKET", "transcripts-raw"),
			AWSRegion:               envOrDefault("AWS_REGION", "us-east-1"),
		},
		Transcription: TranscriptionConfig{
			Provider:     envOrDefault("TRANSCRIBE_PROVIDER", "mock"),
			LanguageCode: envOrDefault("TRANSCRIBE_LANGUAGE_CODE", "en-US"),
			PollInterval: envOrDefaultDuration("TRANSCRIBE_POLL_INTERVAL", 30*time.Second),
			MaxWait:      envOrDefaultDuration("TRANSCRIBE_MAX_WAIT", time.Hour),
		},
		Audit: AuditConfig{
			Provider:        envOrDefault("AUDIT_PROVIDER", "mock"),
			Model:           envOrDefault("AUDIT_MODEL", "claude-3-haiku-20240307"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			OutputPrefix:    envOrDefault("AUDIT_OUTPUT_PREFIX", "audits/"),
		},
		Kafka: KafkaConfig{
			Enabled:         envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:         envOrDefaultList("KAFKA_BROKERS", nil),
			TopicTranscript: envOrDefault("KAFKA_TOPIC_TRANSCRIPT", "pipeline.transcript.created"),
			TopicAudit:      envOrDefault("KAFKA_TOPIC_AUDIT", "pipeline.audit.completed"),
			Principal:       envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel: envOrDefault("LOG_LEVEL", "info"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return parsed
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return parsed
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
