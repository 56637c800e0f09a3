package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClient(cfg)
}

func TestStreamChatAccumulatesChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !req.Stream {
			t.Error("expected stream: true")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range []string{"Hello", " there", "!"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	var chunks []string
	got, err := testClient(srv.URL).StreamChat(context.Background(), []Message{
		{Role: "user", Content: "hi"},
	}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	if got != "Hello there!" {
		t.Errorf("accumulated = %q, want %q", got, "Hello there!")
	}
	if len(chunks) != 3 {
		t.Errorf("callback saw %d chunks, want 3", len(chunks))
	}
}

func TestStreamChatIgnoresMalformedLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: not json\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).StreamChat(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want %q", got, "ok")
	}
}

func TestCompleteReturnsMessageContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("expected stream: false")
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"revised edit"}}]}`)
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Complete(context.Background(), []Message{
		{Role: "user", Content: "fix it"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "revised edit" {
		t.Errorf("got %q", got)
	}
}

func TestCompleteSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model not loaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestCheckConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"data":[{"id":"local-model"}]}`)
	}))
	defer srv.Close()

	if err := testClient(srv.URL).CheckConnection(context.Background()); err != nil {
		t.Fatalf("CheckConnection: %v", err)
	}

	srv.Close()
	if err := testClient(srv.URL).CheckConnection(context.Background()); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
