package provider

import (
	"strings"
	"testing"

	"github.com/hackterm/chat-backend/internal"
)

func TestSanitizeReply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already prefixed", testPrefix + " hello", testPrefix + " hello"},
		{"prefix added", "hello", testPrefix + " hello"},
		{"emphasis stripped", "**bold** claim", testPrefix + " bold claim"},
		{"headings stripped", "# Title\n### Sub", testPrefix + " Title\nSub"},
		{"whitespace trimmed", "  hello  \n", testPrefix + " hello"},
		{"emoji preserved", "hello 😊", testPrefix + " hello 😊"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeReply(tt.in, testPrefix); got != tt.want {
				t.Errorf("sanitizeReply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildUserTurn(t *testing.T) {
	if got := buildUserTurn("hello", nil); got != "hello" {
		t.Errorf("nil search must leave the message untouched, got %q", got)
	}
	empty := &internal.SearchResult{Web: []internal.WebResult{}, Images: []internal.ImageResult{}}
	if got := buildUserTurn("hello", empty); got != "hello" {
		t.Errorf("empty search must leave the message untouched, got %q", got)
	}

	full := &internal.SearchResult{Web: []internal.WebResult{{Title: "t", Snippet: "s", Link: "l"}}}
	got := buildUserTurn("hello", full)
	if !strings.HasPrefix(got, "hello") || !strings.Contains(got, "Web Results") {
		t.Errorf("search context not folded in: %q", got)
	}
}
