// Package http exposes the notification intake API.
package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"audio-compliance-pipeline/internal/app"
	"audio-compliance-pipeline/internal/models"
	"audio-compliance-pipeline/internal/observability"
	"audio-compliance-pipeline/internal/pipeline"
	"audio-compliance-pipeline/internal/service/store"
)

// maxEventBytes bounds a single notification batch payload.
const maxEventBytes = 1 << 20

// Upload URLs are short-lived; clients request one per file.
const (
	uploadURLExpiry    = 5 * time.Minute
	defaultUploadName  = "upload.mp3"
	maxUploadBodyBytes = 4 << 10
)

// batchHandler is the shape shared by the dispatch and audit stages.
type batchHandler func(ctx context.Context, raw []byte) models.Response

// NewRouter constructs the HTTP router for the service. Storage
// notifications for the audio bucket are posted to /v1/events, transcript
// bucket notifications to /v1/audit-events; clients obtain direct-upload
// URLs from /v1/upload-url.
func NewRouter(application *app.Application, dispatcher *pipeline.Dispatcher, auditor *pipeline.AuditHandler, objectStore store.ObjectStore) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger)
	r.Use(middleware.Recoverer)

	// Health endpoints
	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// API routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/events", eventEndpoint(dispatcher.HandleEvent))
		r.Post("/audit-events", eventEndpoint(auditor.HandleEvent))
		r.Post("/upload-url", uploadURLEndpoint(objectStore, application.Cfg.Storage.AudioUploadBucket))
	})

	return r
}

// uploadURLEndpoint issues a presigned PUT URL so clients upload audio
// directly to the upload bucket. A missing or empty fileName falls back
// to a generic name rather than erroring.
func uploadURLEndpoint(objectStore store.ObjectStore, bucket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FileName string `json:"fileName"`
		}
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBodyBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &req); err != nil {
				http.Error(w, "request body must be a JSON object", http.StatusBadRequest)
				return
			}
		}
		if req.FileName == "" {
			req.FileName = defaultUploadName
		}

		uploadURL, err := objectStore.Presign(r.Context(), bucket, req.FileName, uploadURLExpiry)
		if err != nil {
			log.Error().Err(err).Str("fileName", req.FileName).Msg("Failed to issue upload URL")
			http.Error(w, "failed to issue upload URL", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"uploadUrl": uploadURL}); err != nil {
			log.Error().Err(err).Msg("Failed to encode response body")
		}
	}
}

// eventEndpoint adapts a batch handler to an HTTP endpoint. The handler's
// envelope drives both the HTTP status and the JSON body.
func eventEndpoint(handle batchHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		resp := handle(r.Context(), raw)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
			log.Error().Err(err).Msg("Failed to encode response body")
		}
	}
}
