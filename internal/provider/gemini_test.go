package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hackterm/chat-backend/internal"
	"github.com/hackterm/chat-backend/internal/config"
)

const testPrefix = "SYSTEM_ASSISTANT@system"

func testGeminiConfig(endpoint string) config.GeminiConfig {
	return config.GeminiConfig{
		APIKey:          "test-key",
		Endpoint:        endpoint,
		Model:           "gemini-2.0-flash-exp",
		Temperature:     0.4,
		TopK:            64,
		TopP:            0.98,
		MaxOutputTokens: 2048,
		Timeout:         5 * time.Second,
	}
}

func completionServer(t *testing.T, text string, capture *generateRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		})
	}))
}

func TestNewGeminiProvider_MissingKey(t *testing.T) {
	cfg := testGeminiConfig("http://unused")
	cfg.APIKey = ""
	if _, err := NewGeminiProvider(cfg, testPrefix, zap.NewNop()); err == nil {
		t.Fatal("expected error when API key is absent")
	}
}

func TestGeminiProvider_ReplyHistoryMapping(t *testing.T) {
	var got generateRequest
	srv := completionServer(t, testPrefix+" fine, thanks", &got)
	defer srv.Close()

	p, err := NewGeminiProvider(testGeminiConfig(srv.URL), testPrefix, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	history := []internal.Message{
		{Role: internal.RoleUser, Content: "hi"},
		{Role: internal.RoleAssistant, Content: "hello"},
	}
	reply, err := p.Reply(context.Background(), history, "how are you?", nil)
	if err != nil {
		t.Fatal(err)
	}
	if reply != testPrefix+" fine, thanks" {
		t.Errorf("reply = %q", reply)
	}

	if len(got.Contents) != 3 {
		t.Fatalf("got %d contents, want 3", len(got.Contents))
	}
	wantRoles := []string{"user", "model", "user"}
	for i, want := range wantRoles {
		if got.Contents[i].Role != want {
			t.Errorf("contents[%d].role = %q, want %q", i, got.Contents[i].Role, want)
		}
	}
	if got.Contents[2].Parts[0].Text != "how are you?" {
		t.Errorf("final turn = %q, search context must be absent", got.Contents[2].Parts[0].Text)
	}
	if got.GenerationConfig.Temperature != 0.4 || got.GenerationConfig.MaxOutputTokens != 2048 {
		t.Errorf("generation config not forwarded: %+v", got.GenerationConfig)
	}
	if !strings.Contains(got.SystemInstruction.Parts[0].Text, testPrefix) {
		t.Error("system instruction must carry the response prefix rule")
	}
}

func TestGeminiProvider_ReplyWithSearchContext(t *testing.T) {
	var got generateRequest
	srv := completionServer(t, testPrefix+" it is 31°C", &got)
	defer srv.Close()

	p, err := NewGeminiProvider(testGeminiConfig(srv.URL), testPrefix, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	search := &internal.SearchResult{
		Web: []internal.WebResult{
			{Title: "Delhi weather", Snippet: "31°C, sunny", Link: "https://weather.test"},
		},
		Images: []internal.ImageResult{
			{Title: "Delhi skyline", Link: "https://img.test/1", Thumbnail: "https://img.test/1/t"},
		},
	}
	if _, err := p.Reply(context.Background(), nil, "weather in Delhi", search); err != nil {
		t.Fatal(err)
	}

	turn := got.Contents[len(got.Contents)-1].Parts[0].Text
	if !strings.HasPrefix(turn, "weather in Delhi") {
		t.Errorf("user turn must start with the original message, got %q", turn)
	}
	for _, want := range []string{"REAL-TIME SEARCH DATA", "Delhi weather", "31°C, sunny", "https://weather.test", "Delhi skyline", "CRITICAL INSTRUCTIONS"} {
		if !strings.Contains(turn, want) {
			t.Errorf("user turn missing %q", want)
		}
	}
}

func TestGeminiProvider_ReplyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(testGeminiConfig(srv.URL), testPrefix, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Reply(context.Background(), nil, "hello", nil)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("want *GenerationError, got %v", err)
	}
	if genErr.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", genErr.Status)
	}
}

func TestGeminiProvider_ReplyEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(testGeminiConfig(srv.URL), testPrefix, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Reply(context.Background(), nil, "hello", nil)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("want *GenerationError for empty completion, got %v", err)
	}
}

func TestGeminiProvider_ReplySanitized(t *testing.T) {
	srv := completionServer(t, "## Weather\n**31°C** and sunny", nil)
	defer srv.Close()

	p, err := NewGeminiProvider(testGeminiConfig(srv.URL), testPrefix, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	reply, err := p.Reply(context.Background(), nil, "weather?", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := testPrefix + " Weather\n31°C and sunny"
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
}

func TestMockProvider_Reply(t *testing.T) {
	m := MockProvider{Prefix: testPrefix}
	reply, err := m.Reply(context.Background(), nil, "ping", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(reply, testPrefix) {
		t.Errorf("mock reply must carry the prefix, got %q", reply)
	}
}
