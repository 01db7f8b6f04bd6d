package models

// ResponseBody summarizes one handled notification batch.
type ResponseBody struct {
	Message        string   `json:"message"`
	Processed      int      `json:"processed"`
	Skipped        int      `json:"skipped"`
	Failed         int      `json:"failed"`
	Total          int      `json:"total"`
	ProcessedFiles []string `json:"processed_files"`
	SkippedFiles   []string `json:"skipped_files"`
	FailedFiles    []string `json:"failed_files"`
}

// Response is the invocation result envelope. StatusCode is 400 only for a
// batch-level parse failure, 500 for an uncaught failure, 200 otherwise.
// Partial per-record failure is still a 200 with details in the body.
type Response struct {
	StatusCode int          `json:"statusCode"`
	Body       ResponseBody `json:"body"`
}
