// Package mock provides a scriptable transcription adapter for testing
// without cloud credentials.
package mock

import (
	"context"
	"sync"

	"audio-compliance-pipeline/internal/models"
	"audio-compliance-pipeline/internal/service/transcribe"
)

// Adapter implements transcribe.Adapter with canned responses. Started
// jobs are recorded for assertions; per-job status sequences can be
// scripted to exercise polling.
type Adapter struct {
	mu       sync.Mutex
	started  []models.JobConfig
	startErr error
	statuses map[string][]transcribe.JobInfo
}

// New creates a mock adapter that accepts every job as QUEUED.
func New() *Adapter {
	return &Adapter{statuses: make(map[string][]transcribe.JobInfo)}
}

// FailStart makes every subsequent StartJob call return err.
func (a *Adapter) FailStart(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.startErr = err
}

// ScriptStatus queues the JobInfo values JobStatus returns for jobName,
// in order. The last entry repeats once the script is exhausted.
func (a *Adapter) ScriptStatus(jobName string, infos ...transcribe.JobInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statuses[jobName] = infos
}

// Started returns the job configs submitted so far.
func (a *Adapter) Started() []models.JobConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.JobConfig, len(a.started))
	copy(out, a.started)
	return out
}

// StartJob implements transcribe.Adapter.
func (a *Adapter) StartJob(_ context.Context, job models.JobConfig) (transcribe.JobInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.startErr != nil {
		return transcribe.JobInfo{}, a.startErr
	}
	a.started = append(a.started, job)
	return transcribe.JobInfo{Name: job.JobName, Status: transcribe.StatusQueued}, nil
}

// JobStatus implements transcribe.Adapter.
func (a *Adapter) JobStatus(_ context.Context, jobName string) (transcribe.JobInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	script := a.statuses[jobName]
	if len(script) == 0 {
		return transcribe.JobInfo{Name: jobName, Status: transcribe.StatusInProgress}, nil
	}
	info := script[0]
	if len(script) > 1 {
		a.statuses[jobName] = script[1:]
	}
	return info, nil
}
