package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"audio-compliance-pipeline/internal/models"
)

const (
	jobIDPrefix     = "transcribe"
	jobIDTimeLayout = "20060102-150405"
	recoveredExt    = ".mp3"
	jobSuffixLength = 8
	dateStampLength = 8
)

// NewJobID derives a collision-resistant transcription job name from an
// audio key: "transcribe-{base}-{YYYYMMDD-HHMMSS}-{8 hex chars}". The base
// is the final path segment truncated at its first dot. Uniqueness is
// probabilistic (random suffix) plus temporal (second-granularity stamp).
func NewJobID(audioKey string) string {
	name := audioKey
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	base, _, _ := strings.Cut(name, ".")

	stamp := time.Now().UTC().Format(jobIDTimeLayout)
	suffix := uuid.NewString()[:jobSuffixLength]

	return fmt.Sprintf("%s-%s-%s-%s", jobIDPrefix, base, stamp, suffix)
}

// RecoverBaseName is the lossy, best-effort inverse of NewJobID. It walks
// the dash-separated tokens after the "transcribe" prefix, accumulating the
// base name until a token of exactly eight digits (taken to be the date
// stamp) is seen. A base name that itself contains an eight-digit run is
// misparsed here; that ambiguity is pinned by tests, not fixed. The job id
// does not encode the original format, so a fixed ".mp3" is appended.
func RecoverBaseName(jobID string) string {
	parts := strings.Split(jobID, "-")

	if len(parts) >= 2 && parts[0] == jobIDPrefix {
		var base []string
		for _, part := range parts[1:] {
			if isDateStamp(part) {
				break
			}
			base = append(base, part)
		}
		if len(base) > 0 {
			return strings.Join(base, "-") + recoveredExt
		}
	}

	return jobID + recoveredExt
}

func isDateStamp(s string) bool {
	if len(s) != dateStampLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DetectMediaFormat maps an audio key's extension to the transcription
// service's media format tag.
func DetectMediaFormat(audioKey string) (string, error) {
	ext := FileExtension(audioKey)
	if ext == "" {
		return "", &UnsupportedFormatError{}
	}
	switch strings.ToLower(ext) {
	case ".mp3":
		return "mp3", nil
	case ".wav":
		return "wav", nil
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

// BuildJobConfig assembles the complete start-job configuration for one
// audio object: a fresh job name plus the media URI, format, language and
// output location the transcription service expects.
func BuildJobConfig(audioKey, uploadBucket, outputBucket, languageCode string) (models.JobConfig, error) {
	format, err := DetectMediaFormat(audioKey)
	if err != nil {
		return models.JobConfig{}, err
	}

	return models.JobConfig{
		JobName: NewJobID(audioKey),
		Parameters: models.JobParameters{
			MediaFileURI: fmt.Sprintf("s3://%s/%s", uploadBucket, audioKey),
			MediaFormat:  format,
			LanguageCode: languageCode,
			OutputBucket: outputBucket,
		},
	}, nil
}
