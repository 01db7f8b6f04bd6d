package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"SERVICE_PRINCIPAL", "HTTP_PORT", "METRICS_ADDR", "LOG_LEVEL",
		"AUDIO_UPLOAD_BUCKET", "TRANSCRIPT_STORAGE_BUCKET", "AWS_REGION",
		"TRANSCRIBE_PROVIDER", "TRANSCRIBE_LANGUAGE_CODE",
		"TRANSCRIBE_POLL_INTERVAL", "TRANSCRIBE_MAX_WAIT",
		"AUDIT_PROVIDER", "AUDIT_MODEL", "AUDIT_OUTPUT_PREFIX",
		"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_PRINCIPAL",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg := Load()

	if cfg.Service.Principal != "svc-audio-compliance" {
		t.Errorf("expected default principal 'svc-audio-compliance', got %s", cfg.Service.Principal)
	}
	if cfg.Service.HTTPPort != "8080" {
		t.Errorf("expected default port '8080', got %s", cfg.Service.HTTPPort)
	}
	if cfg.Storage.AudioUploadBucket != "audio-uploads" {
		t.Errorf("expected default upload bucket 'audio-uploads', got %s", cfg.Storage.AudioUploadBucket)
	}
	if cfg.Storage.TranscriptStorageBucket != "transcripts-raw" {
		t.Errorf("expected default transcript bucket 'transcripts-raw', got %s", cfg.Storage.TranscriptStorageBucket)
	}
	if cfg.Storage.AWSRegion != "us-east-1" {
		t.Errorf("expected default region 'us-east-1', got %s", cfg.Storage.AWSRegion)
	}
	if cfg.Transcription.Provider != "mock" {
		t.Errorf("expected default transcription provider 'mock', got %s", cfg.Transcription.Provider)
	}
	if cfg.Transcription.LanguageCode != "en-US" {
		t.Errorf("expected default language 'en-US', got %s", cfg.Transcription.LanguageCode)
	}
	if cfg.Transcription.PollInterval != 30*time.Second {
		t.Errorf("expected default poll interval 30s, got %v", cfg.Transcription.PollInterval)
	}
	if cfg.Transcription.MaxWait != time.Hour {
		t.Errorf("expected default max wait 1h, got %v", cfg.Transcription.MaxWait)
	}
	if cfg.Audit.Provider != "mock" {
		t.Errorf("expected default audit provider 'mock', got %s", cfg.Audit.Provider)
	}
	if cfg.Audit.OutputPrefix != "audits/" {
		t.Errorf("expected default audit prefix 'audits/', got %s", cfg.Audit.OutputPrefix)
	}
	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled by default")
	}
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("SERVICE_PRINCIPAL", "custom-principal")
	os.Setenv("HTTP_PORT", "9999")
	os.Setenv("AUDIO_UPLOAD_BUCKET", "my-audio")
	os.Setenv("TRANSCRIPT_STORAGE_BUCKET", "my-transcripts")
	os.Setenv("AWS_REGION", "eu-west-1")
	os.Setenv("TRANSCRIBE_PROVIDER", "aws")
	os.Setenv("TRANSCRIBE_LANGUAGE_CODE", "es-ES")
	os.Setenv("TRANSCRIBE_POLL_INTERVAL", "5s")
	os.Setenv("AUDIT_PROVIDER", "anthropic")
	os.Setenv("KAFKA_ENABLED", "true")
	os.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		for _, v := range []string{
			"SERVICE_PRINCIPAL", "HTTP_PORT", "AUDIO_UPLOAD_BUCKET",
			"TRANSCRIPT_STORAGE_BUCKET", "AWS_REGION", "TRANSCRIBE_PROVIDER",
			"TRANSCRIBE_LANGUAGE_CODE", "TRANSCRIBE_POLL_INTERVAL",
			"AUDIT_PROVIDER", "KAFKA_ENABLED", "KAFKA_BROKERS", "LOG_LEVEL",
		} {
			os.Unsetenv(v)
		}
	}()

	cfg := Load()

	if cfg.Service.Principal != "custom-principal" {
		t.Errorf("expected principal 'custom-principal', got %s", cfg.Service.Principal)
	}
	if cfg.Service.HTTPPort != "9999" {
		t.Errorf("expected port '9999', got %s", cfg.Service.HTTPPort)
	}
	if cfg.Storage.AudioUploadBucket != "my-audio" {
		t.Errorf("expected upload bucket 'my-audio', got %s", cfg.Storage.AudioUploadBucket)
	}
	if cfg.Storage.TranscriptStorageBucket != "my-transcripts" {
		t.Errorf("expected transcript bucket 'my-transcripts', got %s", cfg.Storage.TranscriptStorageBucket)
	}
	if cfg.Storage.AWSRegion != "eu-west-1" {
		t.Errorf("expected region 'eu-west-1', got %s", cfg.Storage.AWSRegion)
	}
	if cfg.Transcription.Provider != "aws" {
		t.Errorf("expected transcription provider 'aws', got %s", cfg.Transcription.Provider)
	}
	if cfg.Transcription.LanguageCode != "es-ES" {
		t.Errorf("expected language 'es-ES', got %s", cfg.Transcription.LanguageCode)
	}
	if cfg.Transcription.PollInterval != 5*time.Second {
		t.Errorf("expected poll interval 5s, got %v", cfg.Transcription.PollInterval)
	}
	if cfg.Audit.Provider != "anthropic" {
		t.Errorf("expected audit provider 'anthropic', got %s", cfg.Audit.Provider)
	}
	if !cfg.Kafka.Enabled {
		t.Error("expected Kafka enabled")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "broker-1:9092" || cfg.Kafka.Brokers[1] != "broker-2:9092" {
		t.Errorf("expected two trimmed brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_InvalidValues_FallbackToDefaults(t *testing.T) {
	os.Setenv("TRANSCRIBE_POLL_INTERVAL", "not-a-duration")
	os.Setenv("KAFKA_ENABLED", "invalid")

	defer func() {
		os.Unsetenv("TRANSCRIBE_POLL_INTERVAL")
		os.Unsetenv("KAFKA_ENABLED")
	}()

	cfg := Load()

	if cfg.Transcription.PollInterval != 30*time.Second {
		t.Errorf("expected default poll interval on invalid input, got %v", cfg.Transcription.PollInterval)
	}
	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled on invalid input")
	}
}

func TestLoad_KafkaPrincipal_FallsBackToServicePrincipal(t *testing.T) {
	os.Setenv("SERVICE_PRINCIPAL", "my-service")
	os.Unsetenv("KAFKA_PRINCIPAL")

	defer os.Unsetenv("SERVICE_PRINCIPAL")

	cfg := Load()

	if cfg.Kafka.Principal != "my-service" {
		t.Errorf("expected Kafka principal to fall back to service principal, got %s", cfg.Kafka.Principal)
	}
}

func TestEnvOrDefaultBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      bool
		expected bool
	}{
		{"true string", "true", false, true},
		{"false string", "false", true, false},
		{"1", "1", false, true},
		{"0", "0", true, false},
		{"TRUE uppercase", "TRUE", false, true},
		{"invalid", "invalid", true, true},
		{"empty", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VAR"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}
			defer os.Unsetenv(key)

			got := envOrDefaultBool(key, tt.def)
			if got != tt.expected {
				t.Errorf("envOrDefaultBool(%s, %v) = %v, want %v", tt.envValue, tt.def, got, tt.expected)
			}
		})
	}
}
