package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goption "google.golang.org/api/option"

	"viagens/internal/chat"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), "", "gemini-test",
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_MissingKey(t *testing.T) {
	if _, err := New(context.Background(), " ", ""); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestGenerate(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Seu voo sai às "},{"text":"19:25."}]}}]}`)
	})

	got, err := c.Generate(context.Background(), "Você é o assistente", "Que horas sai o voo?")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Seu voo sai às 19:25." {
		t.Errorf("Generate() = %q", got)
	}
	if _, ok := body["systemInstruction"]; !ok {
		t.Errorf("request without system instruction: %v", body)
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})

	if _, err := c.Generate(context.Background(), "", "oi"); !errors.Is(err, chat.ErrNoReply) {
		t.Errorf("expected ErrNoReply, got %v", err)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota"}}`, http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), "", "oi")
	if err == nil || errors.Is(err, chat.ErrNoReply) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestModelName(t *testing.T) {
	if got := modelName("gemini-2.5-flash"); got != "models/gemini-2.5-flash" {
		t.Errorf("modelName() = %q", got)
	}
	if got := modelName("models/x"); got != "models/x" {
		t.Errorf("modelName() = %q", got)
	}
}
