package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"audio-compliance-pipeline/internal/config"
	"audio-compliance-pipeline/internal/events"
	"audio-compliance-pipeline/internal/models"
	"audio-compliance-pipeline/internal/observability/metrics"
	"audio-compliance-pipeline/internal/schema"
	"audio-compliance-pipeline/internal/service/audit"
	"audio-compliance-pipeline/internal/service/store"
)

// AuditHandler reviews finished transcripts for compliance issues and
// stores the verdict next to them. It consumes the same notification shape
// as the Dispatcher, watching the transcript bucket for text files.
type AuditHandler struct {
	cfg       *config.Configuration
	store     store.ObjectStore
	reviewer  audit.Reviewer
	publisher *events.Publisher
	validator *schema.Validator
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// NewAuditHandler wires an AuditHandler from its collaborators.
func NewAuditHandler(cfg *config.Configuration, st store.ObjectStore, rev audit.Reviewer, pub *events.Publisher, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		cfg:       cfg,
		store:     st,
		reviewer:  rev,
		publisher: pub,
		validator: schema.New(),
		metrics:   metrics.DefaultMetrics,
		log:       logger.With().Str("component", "audit").Logger(),
	}
}

// HandleEvent processes one notification batch from the transcript bucket.
// Response and isolation semantics match Dispatcher.HandleEvent: 400 for a
// malformed batch, per-record failures folded into a 200 body.
func (h *AuditHandler) HandleEvent(ctx context.Context, raw []byte) (resp models.Response) {
	h.metrics.RecordBatch()

	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("Unexpected failure handling audit batch")
			h.metrics.RecordBatchFailure("internal")
			resp = models.Response{
				StatusCode: 500,
				Body:       models.ResponseBody{Message: fmt.Sprintf("internal error: %v", r)},
			}
		}
	}()

	records, err := ParseEvent(raw)
	if err != nil {
		h.log.Warn().Err(err).Msg("Rejecting malformed event batch")
		h.metrics.RecordBatchFailure("parse")
		return models.Response{
			StatusCode: 400,
			Body:       models.ResponseBody{Message: fmt.Sprintf("invalid event: %v", err)},
		}
	}

	created := FilterCreateEvents(records)
	results := make([]recordResult, 0, len(created))
	for _, rec := range created {
		results = append(results, h.handleRecord(ctx, rec))
	}

	return models.Response{StatusCode: 200, Body: foldOutcomes(results)}
}

// handleRecord reviews one transcript record. Anything that is not a text
// file is skipped: the transcript bucket also receives raw result JSON and
// the verdicts this handler writes itself.
func (h *AuditHandler) handleRecord(ctx context.Context, rec models.EventRecord) recordResult {
	recLog := h.log.With().
		Str("bucket", rec.BucketName).
		Str("key", rec.ObjectKey).
		Logger()

	if !strings.HasSuffix(strings.ToLower(rec.ObjectKey), ".txt") {
		recLog.Debug().Msg("Skipping non-transcript object")
		h.metrics.RecordSkipped("not_transcript")
		return recordResult{key: rec.ObjectKey, outcome: OutcomeSkipped}
	}

	if err := h.reviewTranscript(ctx, rec.BucketName, rec.ObjectKey); err != nil {
		recLog.Error().Err(err).Msg("Failed to audit transcript")
		h.metrics.RecordFailed()
		return recordResult{key: rec.ObjectKey, outcome: OutcomeFailed}
	}
	h.metrics.RecordProcessed()
	return recordResult{key: rec.ObjectKey, outcome: OutcomeProcessed}
}

// reviewTranscript reads one transcript, obtains a compliance verdict and
// stores it under the audit prefix.
func (h *AuditHandler) reviewTranscript(ctx context.Context, bucket, transcriptKey string) error {
	data, err := h.store.Read(ctx, bucket, transcriptKey)
	if err != nil {
		return fmt.Errorf("read transcript %s/%s: %w", bucket, transcriptKey, err)
	}

	start := time.Now()
	verdict, err := h.reviewer.Review(ctx, string(data))
	if err != nil {
		return fmt.Errorf("review %s: %w", transcriptKey, err)
	}
	reviewSeconds := time.Since(start).Seconds()

	auditKey, err := h.auditKey(transcriptKey)
	if err != nil {
		return err
	}

	metadata := map[string]string{
		"source-transcript-key": transcriptKey,
	}
	if err := h.store.Write(ctx, bucket, auditKey, []byte(verdict), "application/json", metadata); err != nil {
		return fmt.Errorf("write verdict %s/%s: %w", bucket, auditKey, err)
	}

	h.metrics.RecordAuditCompleted(reviewSeconds)
	h.log.Info().
		Str("transcriptKey", transcriptKey).
		Str("auditKey", auditKey).
		Msg("Compliance verdict stored")

	event := models.AuditCompleted{
		EventType:     "audit.completed",
		TranscriptKey: transcriptKey,
		AuditBucket:   bucket,
		AuditKey:      auditKey,
		Timestamp:     time.Now().Unix(),
	}
	if err := h.validator.Validate(event); err != nil {
		return err
	}
	if err := h.publisher.PublishAuditCompleted(ctx, auditKey, event); err != nil {
		h.log.Warn().Err(err).Str("auditKey", auditKey).Msg("Failed to publish audit event")
	}
	return nil
}

// auditKey maps "dir/call.txt" to "{prefix}call.json".
func (h *AuditHandler) auditKey(transcriptKey string) (string, error) {
	name, err := BaseFilename(transcriptKey)
	if err != nil {
		return "", err
	}
	base, _ := splitExt(name)
	return h.cfg.Audit.OutputPrefix + base + ".json", nil
}
