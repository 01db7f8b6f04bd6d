package transcribe_test

import (
	"context"
	"testing"
	"time"

	"audio-compliance-pipeline/internal/service/transcribe"
	"audio-compliance-pipeline/internal/service/transcribe/mock"
)

func TestWaitForCompletion_Completes(t *testing.T) {
	a := mock.New()
	a.ScriptStatus("job-1",
		transcribe.JobInfo{Name: "job-1", Status: transcribe.StatusInProgress},
		transcribe.JobInfo{Name: "job-1", Status: transcribe.StatusCompleted, TranscriptURI: "s3://b/job-1.json"},
	)

	info, err := transcribe.WaitForCompletion(context.Background(), a, "job-1", time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Status != transcribe.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", info.Status)
	}
	if info.TranscriptURI != "s3://b/job-1.json" {
		t.Errorf("unexpected transcript uri %s", info.TranscriptURI)
	}
}

func TestWaitForCompletion_Failed(t *testing.T) {
	a := mock.New()
	a.ScriptStatus("job-2",
		transcribe.JobInfo{Name: "job-2", Status: transcribe.StatusFailed, FailureReason: "bad media"},
	)

	info, err := transcribe.WaitForCompletion(context.Background(), a, "job-2", time.Millisecond, time.Second)
	if err == nil {
		t.Fatal("expected error for failed job")
	}
	if info.Status != transcribe.StatusFailed {
		t.Errorf("expected FAILED, got %s", info.Status)
	}
}

func TestWaitForCompletion_Timeout(t *testing.T) {
	a := mock.New() // unscripted jobs report IN_PROGRESS forever

	_, err := transcribe.WaitForCompletion(context.Background(), a, "job-3", time.Millisecond, 20*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestWaitForCompletion_ContextCancelled(t *testing.T) {
	a := mock.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := transcribe.WaitForCompletion(ctx, a, "job-4", time.Millisecond, time.Second)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
