package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"audio-compliance-pipeline/internal/config"
	"audio-compliance-pipeline/internal/events"
	"audio-compliance-pipeline/internal/models"
	"audio-compliance-pipeline/internal/observability/metrics"
	"audio-compliance-pipeline/internal/schema"
	"audio-compliance-pipeline/internal/service/store"
	"audio-compliance-pipeline/internal/service/transcribe"
)

// Outcome classifies what happened to a single notification record.
type Outcome int

const (
	OutcomeProcessed Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// recordResult pairs a record's object key with its outcome.
type recordResult struct {
	key     string
	outcome Outcome
}

// Dispatcher routes storage notification records through the transcription
// pipeline: new audio uploads start jobs, completed job results become
// transcript text files.
type Dispatcher struct {
	cfg         *config.Configuration
	store       store.ObjectStore
	transcriber transcribe.Adapter
	publisher   *events.Publisher
	validator   *schema.Validator
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewDispatcher wires a Dispatcher from its collaborators.
func NewDispatcher(cfg *config.Configuration, st store.ObjectStore, tr transcribe.Adapter, pub *events.Publisher, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:         cfg,
		store:       st,
		transcriber: tr,
		publisher:   pub,
		validator:   schema.New(),
		metrics:     metrics.DefaultMetrics,
		log:         logger.With().Str("component", "dispatcher").Logger(),
	}
}

// HandleEvent processes one notification batch. A batch that cannot be
// parsed at all yields a 400; per-record failures are isolated and reported
// in the body of a 200. Only a defect escaping the per-record boundary
// produces a 500.
func (d *Dispatcher) HandleEvent(ctx context.Context, raw []byte) (resp models.Response) {
	d.metrics.RecordBatch()

	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Msg("Unexpected failure handling event batch")
			d.metrics.RecordBatchFailure("internal")
			resp = models.Response{
				StatusCode: 500,
				Body:       models.ResponseBody{Message: fmt.Sprintf("internal error: %v", r)},
			}
		}
	}()

	records, err := ParseEvent(raw)
	if err != nil {
		d.log.Warn().Err(err).Msg("Rejecting malformed event batch")
		d.metrics.RecordBatchFailure("parse")
		return models.Response{
			StatusCode: 400,
			Body:       models.ResponseBody{Message: fmt.Sprintf("invalid event: %v", err)},
		}
	}

	created := FilterCreateEvents(records)
	if dropped := len(records) - len(created); dropped > 0 {
		d.log.Debug().Int("dropped", dropped).Msg("Dropped non-create event records")
	}

	results := make([]recordResult, 0, len(created))
	for _, rec := range created {
		results = append(results, d.handleRecord(ctx, rec))
	}

	return models.Response{StatusCode: 200, Body: foldOutcomes(results)}
}

// handleRecord classifies and processes one record. Transcription results
// are checked before audio uploads: a JSON object in the transcript bucket
// is always a result, whatever its name looks like.
func (d *Dispatcher) handleRecord(ctx context.Context, rec models.EventRecord) recordResult {
	recLog := d.log.With().
		Str("bucket", rec.BucketName).
		Str("key", rec.ObjectKey).
		Str("eventName", rec.EventName).
		Logger()

	switch {
	case IsTranscriptionResult(rec, d.cfg.Storage.TranscriptStorageBucket):
		if err := d.processResult(ctx, rec.BucketName, rec.ObjectKey); err != nil {
			recLog.Error().Err(err).Msg("Failed to process transcription result")
			d.metrics.RecordFailed()
			return recordResult{key: rec.ObjectKey, outcome: OutcomeFailed}
		}
		d.metrics.RecordProcessed()
		return recordResult{key: rec.ObjectKey, outcome: OutcomeProcessed}

	case IsSupportedAudio(rec.ObjectKey):
		if rec.BucketName != d.cfg.Storage.AudioUploadBucket {
			recLog.Warn().
				Str("expectedBucket", d.cfg.Storage.AudioUploadBucket).
				Msg("Audio upload from unexpected bucket, processing anyway")
		}
		if err := d.startJob(ctx, rec); err != nil {
			recLog.Error().Err(err).Msg("Failed to start transcription job")
			d.metrics.RecordFailed()
			return recordResult{key: rec.ObjectKey, outcome: OutcomeFailed}
		}
		d.metrics.RecordProcessed()
		return recordResult{key: rec.ObjectKey, outcome: OutcomeProcessed}

	default:
		recLog.Info().Msg("Skipping object with unsupported format")
		d.metrics.RecordSkipped("unsupported_format")
		return recordResult{key: rec.ObjectKey, outcome: OutcomeSkipped}
	}
}

// startJob submits one audio object to the transcription service.
func (d *Dispatcher) startJob(ctx context.Context, rec models.EventRecord) error {
	job, err := BuildJobConfig(rec.ObjectKey, rec.BucketName, d.cfg.Storage.TranscriptStorageBucket, d.cfg.Transcription.LanguageCode)
	if err != nil {
		return err
	}

	info, err := d.transcriber.StartJob(ctx, job)
	if err != nil {
		return fmt.Errorf("start transcription job %s: %w", job.JobName, err)
	}

	d.metrics.RecordJobStarted()
	d.log.Info().
		Str("jobName", info.Name).
		Str("status", info.Status).
		Str("mediaUri", job.Parameters.MediaFileURI).
		Msg("Transcription job started")
	return nil
}

// processResult turns one completed-job JSON document into a transcript
// text file in the transcript bucket.
func (d *Dispatcher) processResult(ctx context.Context, bucket, resultKey string) error {
	data, err := d.store.Read(ctx, bucket, resultKey)
	if err != nil {
		return fmt.Errorf("read result %s/%s: %w", bucket, resultKey, err)
	}

	text, err := ExtractTranscriptText(data)
	if err != nil {
		return fmt.Errorf("parse result %s: %w", resultKey, err)
	}
	if text == "" {
		d.log.Warn().Str("key", resultKey).Msg("Transcription result contains no text")
	}

	jobName := documentJobName(data)
	if jobName == "" {
		name, err := BaseFilename(resultKey)
		if err != nil {
			return err
		}
		jobName, _ = splitExt(name)
	}

	originalAudio := RecoverBaseName(jobName)

	transcriptName, err := ToTranscriptName(originalAudio)
	if err != nil {
		return err
	}
	transcriptKey := PreserveDirectory(resultKey, transcriptName)

	metadata := map[string]string{
		"source-audio-key":       originalAudio,
		"transcription-job-name": jobName,
		"transcript-length":      strconv.Itoa(len(text)),
	}
	outBucket := d.cfg.Storage.TranscriptStorageBucket
	if err := d.store.Write(ctx, outBucket, transcriptKey, []byte(text), "text/plain; charset=utf-8", metadata); err != nil {
		return fmt.Errorf("write transcript %s/%s: %w", outBucket, transcriptKey, err)
	}

	d.metrics.RecordTranscriptCreated()
	d.log.Info().
		Str("jobName", jobName).
		Str("transcriptKey", transcriptKey).
		Int("length", len(text)).
		Msg("Transcript created")

	event := models.TranscriptCreated{
		EventType:        "transcript.created",
		JobName:          jobName,
		SourceAudioKey:   originalAudio,
		TranscriptBucket: outBucket,
		TranscriptKey:    transcriptKey,
		TranscriptLength: len(text),
		Timestamp:        time.Now().Unix(),
	}
	if err := d.validator.Validate(event); err != nil {
		return err
	}
	if err := d.publisher.PublishTranscriptCreated(ctx, transcriptKey, event); err != nil {
		// Delivery of the outcome event is best-effort; the transcript
		// itself is already durable.
		d.log.Warn().Err(err).Str("transcriptKey", transcriptKey).Msg("Failed to publish transcript event")
	}
	return nil
}

// ProcessCompletedJob is the manual/admin path: it looks up a finished job
// by name, locates its result document from the transcript URI and runs the
// normal result path on it. The job must already be COMPLETED; this method
// never polls.
func (d *Dispatcher) ProcessCompletedJob(ctx context.Context, jobName string) error {
	info, err := d.transcriber.JobStatus(ctx, jobName)
	if err != nil {
		return fmt.Errorf("job status %s: %w", jobName, err)
	}
	if info.Status != transcribe.StatusCompleted {
		return fmt.Errorf("job %s is %s, not %s", jobName, info.Status, transcribe.StatusCompleted)
	}

	bucket, key, err := parseS3URI(info.TranscriptURI)
	if err != nil {
		return fmt.Errorf("job %s transcript uri: %w", jobName, err)
	}
	return d.processResult(ctx, bucket, key)
}

// parseS3URI splits "s3://bucket/key" into its bucket and key.
func parseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", &InvalidInputError{Reason: fmt.Sprintf("not an s3 uri: %q", uri)}
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", &InvalidInputError{Reason: fmt.Sprintf("malformed s3 uri: %q", uri)}
	}
	return bucket, key, nil
}

// foldOutcomes reduces per-record results into the aggregate response body.
func foldOutcomes(results []recordResult) models.ResponseBody {
	body := models.ResponseBody{
		Total:          len(results),
		ProcessedFiles: []string{},
		SkippedFiles:   []string{},
		FailedFiles:    []string{},
	}
	for _, r := range results {
		switch r.outcome {
		case OutcomeProcessed:
			body.Processed++
			body.ProcessedFiles = append(body.ProcessedFiles, r.key)
		case OutcomeSkipped:
			body.Skipped++
			body.SkippedFiles = append(body.SkippedFiles, r.key)
		case OutcomeFailed:
			body.Failed++
			body.FailedFiles = append(body.FailedFiles, r.key)
		}
	}
	body.Message = fmt.Sprintf("processed %d, skipped %d, failed %d of %d records",
		body.Processed, body.Skipped, body.Failed, body.Total)
	return body
}
