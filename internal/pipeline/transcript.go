package pipeline

import (
	"encoding/json"
	"regexp"
	"strings"
)

// transcriptDocument is a typed view over the transcription result JSON.
// Only results.transcripts[0].transcript matters here; items, timestamps
// and alternatives are ignored. Raw fields keep "absent" distinguishable
// from "present but wrong type".
type transcriptDocument struct {
	JobName string `json:"jobName"`
	Results *struct {
		Transcripts *json.RawMessage `json:"transcripts"`
	} `json:"results"`
}

type transcriptEntry struct {
	Transcript *json.RawMessage `json:"transcript"`
}

var (
	ellipsisPattern    = regexp.MustCompile(`\.{3,}`)
	bangRunPattern     = regexp.MustCompile(`!{3,}`)
	questionRunPattern = regexp.MustCompile(`\?{3,}`)
	doubleQuotePattern = regexp.MustCompile("[“”„]")
	singleQuotePattern = regexp.MustCompile("[‘’‚]")
	controlCharPattern = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
)

// ExtractTranscriptText validates a transcription result document and
// returns its cleaned transcript text. An empty transcripts sequence is
// valid and yields ""; the caller decides whether that is worth a log
// line. Structural deviations fail fast with MissingFieldError or
// FieldTypeError.
func ExtractTranscriptText(data []byte) (string, error) {
	var doc transcriptDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", &MalformedEventError{Reason: "transcription result is not a JSON object"}
	}
	if doc.Results == nil {
		return "", &MissingFieldError{Field: "results"}
	}
	if doc.Results.Transcripts == nil {
		return "", &MissingFieldError{Field: "results.transcripts"}
	}

	var entries []transcriptEntry
	if err := json.Unmarshal(*doc.Results.Transcripts, &entries); err != nil {
		return "", &FieldTypeError{Field: "results.transcripts", Want: "list"}
	}
	if len(entries) == 0 {
		return "", nil
	}

	if entries[0].Transcript == nil {
		return "", &MissingFieldError{Field: "transcript"}
	}
	var text string
	if err := json.Unmarshal(*entries[0].Transcript, &text); err != nil {
		return "", &FieldTypeError{Field: "transcript", Want: "string"}
	}

	return CleanTranscriptText(text), nil
}

// documentJobName returns the jobName recorded in a transcription result
// document, or "" when the document does not carry one.
func documentJobName(data []byte) string {
	var doc transcriptDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.JobName
}

// CleanTranscriptText normalizes raw transcript text: whitespace runs
// collapse to a single space, ellipsis runs of three or more periods
// collapse to exactly three, runs of three or more "!" or "?" collapse to
// one, curly quotes become straight quotes and stray control characters
// are removed.
func CleanTranscriptText(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := multiSpacePattern.ReplaceAllString(strings.TrimSpace(raw), " ")
	cleaned = ellipsisPattern.ReplaceAllString(cleaned, "...")
	cleaned = bangRunPattern.ReplaceAllString(cleaned, "!")
	cleaned = questionRunPattern.ReplaceAllString(cleaned, "?")
	cleaned = doubleQuotePattern.ReplaceAllString(cleaned, `"`)
	cleaned = singleQuotePattern.ReplaceAllString(cleaned, "'")
	cleaned = controlCharPattern.ReplaceAllString(cleaned, "")

	return strings.TrimSpace(cleaned)
}
