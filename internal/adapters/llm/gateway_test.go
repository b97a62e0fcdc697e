package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerbridge/careerbridge-core/internal/adapters/llm"
	"github.com/careerbridge/careerbridge-core/internal/domain"
)

func candidatesEnvelope(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestRESTGatewayExtractsCandidateText(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key in query, got %q", r.URL.RawQuery)
		}
		var payload struct {
			SystemInstruction *struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"systemInstruction"`
			Contents []struct {
				Role  string `json:"role"`
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding request payload: %v", err)
		}
		if payload.SystemInstruction == nil || len(payload.SystemInstruction.Parts) == 0 {
			t.Errorf("expected a systemInstruction in the payload")
		}
		if len(payload.Contents) != 1 || payload.Contents[0].Role != "user" {
			t.Errorf("expected a single user content, got %+v", payload.Contents)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidatesEnvelope("Focus on SQL and Python.")))
	}))
	defer backend.Close()

	g := llm.NewRESTGateway(backend.URL, "test-key", backend.Client())

	text, err := g.Send(context.Background(), domain.Prompt{System: "be helpful", User: "what skills?"}, time.Second)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if text != "Focus on SQL and Python." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestProxyGatewayExtractsFlatReply(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Message == "" {
			t.Errorf("expected a message field, got err=%v payload=%+v", err, payload)
		}
		_, _ = w.Write([]byte(`{"reply":"Here is some advice."}`))
	}))
	defer backend.Close()

	g := llm.NewProxyGateway(backend.URL, backend.Client())

	text, err := g.Send(context.Background(), domain.Prompt{User: "help"}, time.Second)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if text != "Here is some advice." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestGatewayClassifiesNonSuccessStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer backend.Close()

	g := llm.NewRESTGateway(backend.URL, "k", backend.Client())

	_, err := g.Send(context.Background(), domain.Prompt{User: "q"}, time.Second)
	if domain.KindOf(err) != domain.ErrBackendStatus {
		t.Fatalf("expected backend_status, got %v", err)
	}
	var tagged *domain.Error
	if !errors.As(err, &tagged) || tagged.Status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 in error, got %v", err)
	}
}

func TestGatewayClassifiesTimeout(t *testing.T) {
	release := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		backend.Close()
	}()

	g := llm.NewRESTGateway(backend.URL, "k", backend.Client())

	start := time.Now()
	_, err := g.Send(context.Background(), domain.Prompt{User: "q"}, 50*time.Millisecond)
	if domain.KindOf(err) != domain.ErrTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout did not settle promptly")
	}
}

func TestGatewayClassifiesEmptyResponse(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer backend.Close()

	g := llm.NewRESTGateway(backend.URL, "k", backend.Client())

	_, err := g.Send(context.Background(), domain.Prompt{User: "q"}, time.Second)
	if domain.KindOf(err) != domain.ErrEmptyResponse {
		t.Fatalf("expected empty_response, got %v", err)
	}
}
