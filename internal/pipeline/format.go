package pipeline

import (
	"strings"

	"audio-compliance-pipeline/internal/models"
)

// supportedAudioFormats is the fixed set of eligible input extensions.
var supportedAudioFormats = map[string]bool{
	".mp3": true,
	".wav": true,
}

// FileExtension returns the extension of the final path segment, including
// the leading dot, or "" when there is none. Leading dots of a dot-file do
// not start an extension, so ".mp3" has no extension while "a." yields ".".
func FileExtension(key string) string {
	if key == "" {
		return ""
	}
	name := key
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		name = key[i+1:]
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return ""
	}
	for i := 0; i < dot; i++ {
		if name[i] != '.' {
			return name[dot:]
		}
	}
	return ""
}

// IsSupportedAudio reports whether the key names an eligible audio input,
// matching the extension case-insensitively.
func IsSupportedAudio(key string) bool {
	ext := FileExtension(key)
	if ext == "" {
		return false
	}
	return supportedAudioFormats[strings.ToLower(ext)]
}

// IsTranscriptionResult reports whether the record is a transcription
// result artifact: a JSON file landing in the transcript bucket. Callers
// check this before the audio-format predicate, it is the more specific
// condition in the deployed topology.
func IsTranscriptionResult(rec models.EventRecord, transcriptBucket string) bool {
	return rec.BucketName == transcriptBucket &&
		strings.HasSuffix(strings.ToLower(rec.ObjectKey), ".json")
}
