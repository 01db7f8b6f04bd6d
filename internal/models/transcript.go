package models

// TranscriptCreated is published when a transcript text file has been
// written to the transcript bucket.
type TranscriptCreated struct {
	EventType        string `json:"eventType"`
	JobName          string `json:"jobName"`
	SourceAudioKey   string `json:"sourceAudioKey"`
	TranscriptBucket string `json:"transcriptBucket"`
	TranscriptKey    string `json:"transcriptKey"`
	TranscriptLength int    `json:"transcriptLength"`
	Timestamp        int64  `json:"timestamp"`
}

// AuditCompleted is published when a compliance verdict has been stored.
type AuditCompleted struct {
	EventType     string `json:"eventType"`
	TranscriptKey string `json:"transcriptKey"`
	AuditBucket   string `json:"auditBucket"`
	AuditKey      string `json:"auditKey"`
	Timestamp     int64  `json:"timestamp"`
}
