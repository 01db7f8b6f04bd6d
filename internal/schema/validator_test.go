package schema

import (
	"testing"

	"audio-compliance-pipeline/internal/models"
)

func TestValidate_TranscriptCreated(t *testing.T) {
	v := New()

	valid := models.TranscriptCreated{
		EventType:     "transcript.created",
		JobName:       "transcribe-call-20240115-103000-abcd1234",
		TranscriptKey: "call.txt",
	}
	if err := v.Validate(valid); err != nil {
		t.Errorf("expected valid event, got %v", err)
	}

	missing := valid
	missing.JobName = ""
	if err := v.Validate(missing); err == nil {
		t.Error("expected error for missing jobName")
	}
}

func TestValidate_AuditCompleted(t *testing.T) {
	v := New()

	valid := models.AuditCompleted{
		EventType:     "audit.completed",
		TranscriptKey: "call.txt",
		AuditKey:      "audits/call.json",
	}
	if err := v.Validate(valid); err != nil {
		t.Errorf("expected valid event, got %v", err)
	}

	missing := valid
	missing.AuditKey = ""
	if err := v.Validate(missing); err == nil {
		t.Error("expected error for missing auditKey")
	}
}

func TestValidate_UnknownTypePasses(t *testing.T) {
	v := New()
	if err := v.Validate(map[string]string{"anything": "goes"}); err != nil {
		t.Errorf("unknown event types must pass, got %v", err)
	}
}
