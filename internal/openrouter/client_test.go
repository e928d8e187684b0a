package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteJSONMode(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "{\"sentiment\": \"positive\"}"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "nvidia/nemotron-nano-9b-v2", server.URL)
	got, err := client.Complete(context.Background(), "analyze this", true)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != `{"sentiment": "positive"}` {
		t.Errorf("unexpected content %q", got)
	}

	if captured["model"] != "nvidia/nemotron-nano-9b-v2" {
		t.Errorf("model = %v", captured["model"])
	}
	msgs, ok := captured["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", captured["messages"])
	}
	msg := msgs[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "analyze this" {
		t.Errorf("unexpected message %v", msg)
	}
	rf, ok := captured["response_format"].(map[string]any)
	if !ok || rf["type"] != "json_object" {
		t.Errorf("expected json_object response_format, got %v", captured["response_format"])
	}
}

func TestCompletePlainTextOmitsResponseFormat(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "plain answer"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "nvidia/nemotron-nano-9b-v2", server.URL)
	got, err := client.Complete(context.Background(), "say something", false)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "plain answer" {
		t.Errorf("unexpected content %q", got)
	}
	if _, ok := captured["response_format"]; ok {
		t.Errorf("response_format must be omitted in plain mode, got %v", captured["response_format"])
	}
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "nvidia/nemotron-nano-9b-v2", server.URL)
	_, err := client.Complete(context.Background(), "prompt", true)
	if err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "nvidia/nemotron-nano-9b-v2", server.URL)
	_, err := client.Complete(context.Background(), "prompt", false)
	if err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestCompleteUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient("test-key", "nvidia/nemotron-nano-9b-v2", server.URL)
	_, err := client.Complete(context.Background(), "prompt", false)
	if err == nil {
		t.Fatal("expected transport error")
	}
}
