package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hackterm/chat-backend/internal"
)

// ChatProvider produces the assistant reply for one message plus its
// history window, optionally grounded on search results.
type ChatProvider interface {
	Model() string
	Reply(ctx context.Context, history []internal.Message, message string, search *internal.SearchResult) (string, error)
}

// GenerationError is a fatal upstream failure for a single request. It
// carries the upstream status code and is never retried.
type GenerationError struct {
	Status int
	Reason string
}

func (e *GenerationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("generation failed with status %d: %s", e.Status, e.Reason)
	}
	return "generation failed with status " + strconv.Itoa(e.Status)
}

// Fallback provider (mock) that replies without an external API.
type MockProvider struct {
	Prefix string
}

func (m MockProvider) Model() string { return "mock-hackterm" }

func (m MockProvider) Reply(_ context.Context, _ []internal.Message, message string, search *internal.SearchResult) (string, error) {
	reply := fmt.Sprintf("%s (mock) You asked: %q", m.Prefix, message)
	if !search.Empty() {
		reply += fmt.Sprintf(" [%d web, %d image results attached]", len(search.Web), len(search.Images))
	}
	return reply, nil
}
