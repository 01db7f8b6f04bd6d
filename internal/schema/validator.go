// Package schema validates outbound event payloads before they are
// published.
package schema

import (
	"fmt"

	"audio-compliance-pipeline/internal/models"
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate checks that an outbound event carries its required fields.
// Unknown event types pass; the check exists to catch wiring mistakes,
// not to gatekeep new event kinds.
func (v *Validator) Validate(event any) error {
	switch ev := event.(type) {
	case models.TranscriptCreated:
		return requireFields(map[string]string{
			"eventType":     ev.EventType,
			"jobName":       ev.JobName,
			"transcriptKey": ev.TranscriptKey,
		})
	case models.AuditCompleted:
		return requireFields(map[string]string{
			"eventType":     ev.EventType,
			"transcriptKey": ev.TranscriptKey,
			"auditKey":      ev.AuditKey,
		})
	default:
		return nil
	}
}

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("event missing required field %q", name)
		}
	}
	return nil
}
