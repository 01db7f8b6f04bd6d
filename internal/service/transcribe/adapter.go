// Package transcribe defines the interface for managed transcription
// collaborators.
package transcribe

import (
	"context"
	"fmt"
	"time"

	"audio-compliance-pipeline/internal/models"
)

// Job status values reported by the transcription service.
const (
	StatusQueued     = "QUEUED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// JobInfo is the service's view of one transcription job.
type JobInfo struct {
	Name          string
	Status        string
	TranscriptURI string // set when Status is COMPLETED
	FailureReason string // set when Status is FAILED
}

// Adapter defines the interface for transcription providers.
type Adapter interface {
	// StartJob submits a new transcription job.
	StartJob(ctx context.Context, job models.JobConfig) (JobInfo, error)

	// JobStatus returns the current state of a job.
	JobStatus(ctx context.Context, jobName string) (JobInfo, error)
}

// WaitForCompletion polls a job until it completes, fails or the overall
// timeout elapses. It blocks and is meant for manual and administrative
// callers only; the event-driven path never polls.
func WaitForCompletion(ctx context.Context, a Adapter, jobName string, pollInterval, maxWait time.Duration) (JobInfo, error) {
	deadline := time.Now().Add(maxWait)

	for {
		info, err := a.JobStatus(ctx, jobName)
		if err != nil {
			return JobInfo{}, err
		}

		switch info.Status {
		case StatusCompleted:
			return info, nil
		case StatusFailed:
			return info, fmt.Errorf("transcription job %s failed: %s", jobName, info.FailureReason)
		}

		if time.Now().Add(pollInterval).After(deadline) {
			return JobInfo{}, fmt.Errorf("transcription job %s did not complete within %s", jobName, maxWait)
		}

		select {
		case <-ctx.Done():
			return JobInfo{}, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
