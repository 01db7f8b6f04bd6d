package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"audio-compliance-pipeline/internal/app"
	"audio-compliance-pipeline/internal/config"
	"audio-compliance-pipeline/internal/events"
	"audio-compliance-pipeline/internal/pipeline"
	auditmock "audio-compliance-pipeline/internal/service/audit/mock"
	storemock "audio-compliance-pipeline/internal/service/store/mock"
	transcribemock "audio-compliance-pipeline/internal/service/transcribe/mock"
)

func testRouter() (httpHandler *httptest.Server, st *storemock.Store) {
	cfg := config.Load()
	application := &app.Application{Cfg: cfg, Logger: zerolog.Nop()}
	pub := events.New(&events.Config{Enabled: false})
	st = storemock.New()

	dispatcher := pipeline.NewDispatcher(cfg, st, transcribemock.New(), pub, zerolog.Nop())
	auditor := pipeline.NewAuditHandler(cfg, st, auditmock.New(), pub, zerolog.Nop())

	return httptest.NewServer(NewRouter(application, dispatcher, auditor, st)), st
}

func TestRouter_Health(t *testing.T) {
	srv, _ := testRouter()
	defer srv.Close()

	for _, path := range []string{"/v1/liveness", "/v1/readiness"} {
		resp, err := srv.Client().Get(srv.URL + path)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			t.Errorf("%s returned %d", path, resp.StatusCode)
		}
	}
}

func TestRouter_EventsEndpoint(t *testing.T) {
	srv, _ := testRouter()
	defer srv.Close()

	body := `{"Records": [{
		"eventTime": "2024-01-15T10:30:00Z",
		"eventName": "ObjectCreated:Put",
		"s3": {"bucket": {"name": "audio-uploads"}, "object": {"key": "call.mp3"}}
	}]}`

	resp, err := srv.Client().Post(srv.URL+"/v1/events", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
}

func TestRouter_EventsEndpoint_MalformedBatch(t *testing.T) {
	srv, _ := testRouter()
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/v1/events", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRouter_AuditEventsEndpoint(t *testing.T) {
	srv, st := testRouter()
	defer srv.Close()

	st.Put("transcripts-raw", "call.txt", []byte("hello there"))

	body := `{"Records": [{
		"eventTime": "2024-01-15T10:30:00Z",
		"eventName": "ObjectCreated:Put",
		"s3": {"bucket": {"name": "transcripts-raw"}, "object": {"key": "call.txt"}}
	}]}`

	resp, err := srv.Client().Post(srv.URL+"/v1/audit-events", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if _, ok := st.Get("transcripts-raw", "audits/call.json"); !ok {
		t.Error("expected verdict written through the audit endpoint")
	}
}

func TestRouter_UploadURLEndpoint(t *testing.T) {
	srv, st := testRouter()
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/v1/upload-url", "application/json",
		strings.NewReader(`{"fileName": "meeting.wav"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.UploadURL == "" {
		t.Fatal("expected a non-empty uploadUrl")
	}

	presigned := st.Presigned()
	if len(presigned) != 1 || presigned[0] != "audio-uploads/meeting.wav" {
		t.Errorf("expected presign for audio-uploads/meeting.wav, got %v", presigned)
	}
}

func TestRouter_UploadURLEndpoint_DefaultFileName(t *testing.T) {
	srv, st := testRouter()
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/v1/upload-url", "application/json", strings.NewReader(``))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	presigned := st.Presigned()
	if len(presigned) != 1 || presigned[0] != "audio-uploads/upload.mp3" {
		t.Errorf("expected default file name upload.mp3, got %v", presigned)
	}
}

func TestRouter_UploadURLEndpoint_PresignFailure(t *testing.T) {
	srv, st := testRouter()
	defer srv.Close()

	st.FailPresign(errors.New("signing unavailable"))

	resp, err := srv.Client().Post(srv.URL+"/v1/upload-url", "application/json",
		strings.NewReader(`{"fileName": "call.mp3"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != 500 {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

func TestRouter_UploadURLEndpoint_BadBody(t *testing.T) {
	srv, _ := testRouter()
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/v1/upload-url", "application/json",
		strings.NewReader(`not json`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
