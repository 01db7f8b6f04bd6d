package pipeline

import (
	"encoding/json"
	"strings"
	"time"

	"audio-compliance-pipeline/internal/models"
)

// createEventPrefixes are the event names that denote object creation,
// with and without the service namespace.
var createEventPrefixes = []string{"ObjectCreated:", "s3:ObjectCreated:"}

// rawEvent mirrors the notification envelope. Records stays raw so a
// present-but-wrong-typed field is distinguishable from an absent one.
type rawEvent struct {
	Records *json.RawMessage `json:"Records"`
}

type rawRecord struct {
	EventVersion string `json:"eventVersion"`
	EventSource  string `json:"eventSource"`
	AWSRegion    string `json:"awsRegion"`
	EventTime    string `json:"eventTime"`
	EventName    string `json:"eventName"`
	S3           struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key  string `json:"key"`
			Size *int64 `json:"size"`
		} `json:"object"`
	} `json:"s3"`
}

// ParseEvent validates a raw notification payload and normalizes it into
// typed records. The batch is all-or-nothing: a single malformed record
// fails the whole parse with a MalformedEventError. Filtering by event
// kind happens afterwards, in FilterCreateEvents.
func ParseEvent(data []byte) ([]models.EventRecord, error) {
	var evt rawEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, &MalformedEventError{Reason: "event must be a JSON object"}
	}
	if evt.Records == nil {
		return nil, &MalformedEventError{Reason: "event must contain 'Records' field"}
	}

	var raws []rawRecord
	if err := json.Unmarshal(*evt.Records, &raws); err != nil {
		return nil, &MalformedEventError{Reason: "'Records' must be a list"}
	}

	records := make([]models.EventRecord, 0, len(raws))
	for _, raw := range raws {
		rec, err := parseRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(raw rawRecord) (models.EventRecord, error) {
	if raw.S3.Bucket.Name == "" {
		return models.EventRecord{}, &MalformedEventError{Reason: "bucket name cannot be empty"}
	}
	if raw.S3.Object.Key == "" {
		return models.EventRecord{}, &MalformedEventError{Reason: "object key cannot be empty"}
	}
	if raw.EventName == "" {
		return models.EventRecord{}, &MalformedEventError{Reason: "event name cannot be empty"}
	}
	if raw.EventTime == "" {
		return models.EventRecord{}, &MalformedEventError{Reason: "event time cannot be empty"}
	}

	eventTime, err := parseEventTime(raw.EventTime)
	if err != nil {
		return models.EventRecord{}, &MalformedEventError{Reason: "invalid event time format: " + raw.EventTime}
	}

	return models.EventRecord{
		BucketName:   raw.S3.Bucket.Name,
		ObjectKey:    raw.S3.Object.Key,
		EventName:    raw.EventName,
		EventTime:    eventTime,
		ObjectSize:   raw.S3.Object.Size,
		EventVersion: raw.EventVersion,
		AWSRegion:    raw.AWSRegion,
	}, nil
}

// parseEventTime accepts ISO-8601 timestamps. A trailing Z is the UTC
// offset; a timestamp without any offset is taken as UTC.
func parseEventTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
}

// FilterCreateEvents keeps only object-creation records, preserving the
// original order. Deletions and other event kinds are dropped silently.
func FilterCreateEvents(records []models.EventRecord) []models.EventRecord {
	filtered := make([]models.EventRecord, 0, len(records))
	for _, rec := range records {
		for _, prefix := range createEventPrefixes {
			if strings.HasPrefix(rec.EventName, prefix) {
				filtered = append(filtered, rec)
				break
			}
		}
	}
	return filtered
}
