// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "audio_compliance"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Batch metrics
	BatchesTotal  prometheus.Counter
	BatchFailures *prometheus.CounterVec

	// Record outcome metrics
	RecordsProcessed prometheus.Counter
	RecordsSkipped   *prometheus.CounterVec
	RecordsFailed    prometheus.Counter

	// Pipeline stage metrics
	JobsStarted        prometheus.Counter
	TranscriptsCreated prometheus.Counter
	AuditsCompleted    prometheus.Counter
	ReviewLatency      prometheus.Histogram

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		BatchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Total number of notification batches handled",
		}),
		BatchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_failures_total",
			Help:      "Total number of batch-level failures by kind",
		}, []string{"kind"}),
		RecordsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_processed_total",
			Help:      "Total number of records processed successfully",
		}),
		RecordsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Total number of records skipped by reason",
		}, []string{"reason"}),
		RecordsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_failed_total",
			Help:      "Total number of records that failed processing",
		}),
		JobsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_jobs_started_total",
			Help:      "Total number of transcription jobs started",
		}),
		TranscriptsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_created_total",
			Help:      "Total number of transcript files written",
		}),
		AuditsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audits_completed_total",
			Help:      "Total number of compliance verdicts stored",
		}),
		ReviewLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "review_latency_seconds",
			Help:      "Latency of compliance review calls in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka publish attempts",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of failed Kafka publishes",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Latency of Kafka publishes in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"topic"}),
	}
}

// RecordBatch records one handled notification batch.
func (m *Metrics) RecordBatch() {
	m.BatchesTotal.Inc()
}

// RecordBatchFailure records a batch-level failure ("parse" or "internal").
func (m *Metrics) RecordBatchFailure(kind string) {
	m.BatchFailures.WithLabelValues(kind).Inc()
}

// RecordProcessed records a successfully processed record.
func (m *Metrics) RecordProcessed() {
	m.RecordsProcessed.Inc()
}

// RecordSkipped records an intentionally skipped record.
func (m *Metrics) RecordSkipped(reason string) {
	m.RecordsSkipped.WithLabelValues(reason).Inc()
}

// RecordFailed records a record whose processing failed.
func (m *Metrics) RecordFailed() {
	m.RecordsFailed.Inc()
}

// RecordJobStarted records a transcription job submission.
func (m *Metrics) RecordJobStarted() {
	m.JobsStarted.Inc()
}

// RecordTranscriptCreated records a transcript file write.
func (m *Metrics) RecordTranscriptCreated() {
	m.TranscriptsCreated.Inc()
}

// RecordAuditCompleted records a stored compliance verdict.
func (m *Metrics) RecordAuditCompleted(latencySeconds float64) {
	m.AuditsCompleted.Inc()
	m.ReviewLatency.Observe(latencySeconds)
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
