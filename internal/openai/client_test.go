package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// pngHeader is enough of a PNG for content-type sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func testClient(baseURL string) *Client {
	c := NewClient("test-key", "gpt-4-turbo-preview", "dall-e-3", 0.7, 500, 2*time.Second)
	c.SetBaseURL(baseURL)
	return c
}

func TestComplete_ReturnsFirstChoiceTrimmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4-turbo-preview" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  A tidy summary.  \n"}},
				{"message": map[string]any{"content": "ignored second choice"}},
			},
		})
	}))
	defer server.Close()

	got, err := testClient(server.URL).Complete(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "A tidy summary." {
		t.Errorf("expected trimmed first choice, got %q", got)
	}
}

func TestComplete_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestComplete_APIErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "invalid_request_error", "message": "bad model"},
		})
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), "s", "u")
	if err == nil || !strings.Contains(err.Error(), "bad model") {
		t.Errorf("expected api error surfaced, got %v", err)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	if _, err := testClient(server.URL).Complete(context.Background(), "s", "u"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestGenerateImage_ReturnsFirstURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "dall-e-3" || req.N != 1 || req.Size != "1024x1024" || req.Quality != "standard" {
			t.Errorf("unexpected request %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"url": "https://img.example/one.png"}},
		})
	}))
	defer server.Close()

	url, err := testClient(server.URL).GenerateImage(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("GenerateImage failed: %v", err)
	}
	if url != "https://img.example/one.png" {
		t.Errorf("expected first result url, got %q", url)
	}
}

func TestGenerateImage_EmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	if _, err := testClient(server.URL).GenerateImage(context.Background(), "p"); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestProbeURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/live" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := testClient(server.URL)
	if !c.ProbeURL(context.Background(), server.URL+"/live") {
		t.Error("expected live url to probe true")
	}
	if c.ProbeURL(context.Background(), server.URL+"/expired") {
		t.Error("expected expired url to probe false")
	}
	if c.ProbeURL(context.Background(), "http://127.0.0.1:1/unreachable") {
		t.Error("expected unreachable url to probe false")
	}
}

func TestDownload_Image(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngHeader)
	}))
	defer server.Close()

	data, err := testClient(server.URL).Download(context.Background(), server.URL+"/img.png")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if len(data) != len(pngHeader) {
		t.Errorf("expected %d bytes, got %d", len(pngHeader), len(data))
	}
}

func TestDownload_RejectsTextualErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>Request has expired</Message></Error>`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Download(context.Background(), server.URL+"/img.png")
	if err == nil {
		t.Fatal("expected error for textual payload")
	}
	if !strings.Contains(err.Error(), "stale or invalid") {
		t.Errorf("expected descriptive error, got %v", err)
	}
}

func TestDownload_RejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := testClient(server.URL).Download(context.Background(), server.URL+"/img.png"); err == nil {
		t.Error("expected error for 403 response")
	}
}
