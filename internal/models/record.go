// Package models defines the data structures shared across the pipeline.
package models

import "time"

// EventRecord is one storage-notification entry, normalized after parsing.
// BucketName, ObjectKey and EventName are guaranteed non-empty by the parser.
type EventRecord struct {
	BucketName   string
	ObjectKey    string
	EventName    string
	EventTime    time.Time
	ObjectSize   *int64 // nil when the notification omitted it
	EventVersion string
	AWSRegion    string
}
