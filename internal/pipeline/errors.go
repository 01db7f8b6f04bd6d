// Package pipeline holds the deterministic transformation and validation
// layer between the storage-event boundary and the external-service calls:
// event parsing, file classification, job identifiers, filename derivation,
// transcript extraction and per-record dispatch.
package pipeline

import "fmt"

// MalformedEventError indicates the whole notification batch is invalid.
// It is batch-fatal: the invocation answers 400 and no record is processed.
type MalformedEventError struct {
	Reason string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event: %s", e.Reason)
}

// InvalidInputError indicates a caller passed an empty or otherwise unusable
// value to a pure function. With validated input it should never occur.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// MissingFieldError indicates an external document lacked an expected field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q in transcription result", e.Field)
}

// FieldTypeError indicates an external document field had the wrong type.
type FieldTypeError struct {
	Field string
	Want  string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %q in transcription result is not a %s", e.Field, e.Want)
}

// UnsupportedFormatError indicates an audio key whose extension is not an
// eligible format. The classifier normally pre-empts it as a skip; reaching
// it during job construction records the record as failed.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported audio format: no file extension"
	}
	return fmt.Sprintf("unsupported audio format: %s", e.Extension)
}
