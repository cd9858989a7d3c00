package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func completionBody(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestDeepSeekTransform(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(completionBody("  refined text  ")))
	}))
	defer server.Close()

	client := NewDeepSeek("test-key", WithBaseURL(server.URL))
	got, err := client.Transform(context.Background(), "system prompt", "user content")
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if got != "refined text" {
		t.Errorf("Transform() = %q, want trimmed result", got)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "user content" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
	if gotReq.Stream {
		t.Error("request asked for streaming")
	}
}

func TestDeepSeekTransformRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "upstream overloaded", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(completionBody("ok")))
	}))
	defer server.Close()

	client := NewDeepSeek("test-key",
		WithBaseURL(server.URL),
		WithRetries(3, time.Millisecond))

	got, err := client.Transform(context.Background(), "p", "c")
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got %q after %d calls, want ok after 3", got, calls)
	}
}

func TestDeepSeekTransformExhaustsRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewDeepSeek("test-key",
		WithBaseURL(server.URL),
		WithRetries(2, time.Millisecond))

	_, err := client.Transform(context.Background(), "p", "c")
	if err == nil {
		t.Fatal("Transform() expected error after exhausted retries")
	}
	if calls != 2 {
		t.Errorf("made %d calls, want 2", calls)
	}
	if !strings.Contains(err.Error(), "http 500") {
		t.Errorf("error = %v, want http status in message", err)
	}
}

func TestDeepSeekTransformAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"invalid model"}}`))
	}))
	defer server.Close()

	client := NewDeepSeek("test-key",
		WithBaseURL(server.URL),
		WithRetries(1, time.Millisecond))

	_, err := client.Transform(context.Background(), "p", "c")
	if err == nil || !strings.Contains(err.Error(), "invalid model") {
		t.Errorf("error = %v, want api error message", err)
	}
}

func TestDeepSeekMissingAPIKey(t *testing.T) {
	client := NewDeepSeek("", WithRetries(1, time.Millisecond))
	if _, err := client.Transform(context.Background(), "p", "c"); err == nil {
		t.Error("Transform() expected error without api key")
	}
}
