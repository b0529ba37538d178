package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateContent_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("expected x-goog-api-key test-key, got %q", r.Header.Get("x-goog-api-key"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", r.Header.Get("Content-Type"))
		}
		if !strings.Contains(r.URL.Path, "models/test-model:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected contents: %+v", req.Contents)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]any{{"text": "world"}},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL)

	result, err := c.GenerateContent(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "world" {
		t.Errorf("expected 'world', got %q", result)
	}
}

func TestGenerateContent_MultiPartCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]any{{"text": "foo"}, {"text": "bar"}},
					},
				},
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL)

	result, err := c.GenerateContent(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "foobar" {
		t.Errorf("expected concatenated parts 'foobar', got %q", result)
	}
}

func TestGenerateContent_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"status":  "RESOURCE_EXHAUSTED",
				"message": "quota exceeded",
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL)

	_, err := c.GenerateContent(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for API error response")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected error to carry API message, got %v", err)
	}
}

func TestGenerateContent_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model")
	c.SetTestTransport(server.URL)

	_, err := c.GenerateContent(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
