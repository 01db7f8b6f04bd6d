package models

// JobParameters carries everything the transcription service needs to
// start a job on one audio object.
type JobParameters struct {
	MediaFileURI string // s3://bucket/key of the audio input
	MediaFormat  string // "mp3" or "wav"
	LanguageCode string // e.g. "en-US"
	OutputBucket string // bucket where the result JSON lands
}

// JobConfig pairs a unique job name with its start parameters.
// It is created per audio record and discarded after the start call.
type JobConfig struct {
	JobName    string
	Parameters JobParameters
}
