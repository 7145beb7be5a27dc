package huggingface

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spigell/resume-extractor/internal/ai"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(zap.NewNop(), "secret-token", "org/model", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client.APIURL = server.URL + "/models/"
	return client
}

func TestGenerateSendsParameters(t *testing.T) {
	t.Parallel()

	var (
		gotPath    string
		gotAuth    string
		gotRequest generationRequest
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text": "{\"name\": \"Jane\"}"}]`))
	})

	output, err := client.Generate(context.Background(), "extract this", ai.DefaultParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != `{"name": "Jane"}` {
		t.Fatalf("unexpected output %q", output)
	}
	if gotPath != "/models/org/model" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}

	params := gotRequest.Parameters
	if gotRequest.Inputs != "extract this" {
		t.Fatalf("unexpected inputs %q", gotRequest.Inputs)
	}
	if params.MaxNewTokens != 512 || params.Temperature != 0.01 || params.DoSample || params.ReturnFullText {
		t.Fatalf("unexpected parameters %+v", params)
	}
}

func TestGenerateAcceptsSingleObjectAndGzip(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"generated_text": "done"}`))
		_ = gz.Close()
	})

	output, err := client.Generate(context.Background(), "prompt", ai.DefaultParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "done" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestGenerateFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "bad status with api error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error": "Model is currently loading"}`))
			},
		},
		{
			name: "bad status without body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "empty list",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, tt.handler)

			_, err := client.Generate(context.Background(), "prompt", ai.DefaultParams)
			var backendErr *ai.BackendError
			if !errors.As(err, &backendErr) {
				t.Fatalf("expected BackendError, got %v", err)
			}
			if backendErr.Provider != "huggingface" {
				t.Fatalf("unexpected provider %q", backendErr.Provider)
			}
		})
	}
}

func TestNewValidatesToken(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, " ", "", 0); err == nil {
		t.Fatalf("expected error for empty token")
	}

	client, err := New(nil, "token", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != defaultModel || client.Provider() != "huggingface" {
		t.Fatalf("unexpected defaults: model=%q provider=%q", client.Model(), client.Provider())
	}
	if client.HTTPClient.Timeout != defaultTimeout {
		t.Fatalf("unexpected timeout %s", client.HTTPClient.Timeout)
	}
}
