package routing

import (
	"testing"

	"github.com/hackterm/chat-backend/internal/config"
)

func newTestClassifier() *Classifier {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	return NewClassifier(cfg.Routing.SearchTerms, cfg.Routing.ImageTerms, cfg.Routing.ReferenceTerms)
}

func TestClassifier_NeedsSearch(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		message string
		want    bool
	}{
		{"what's today's weather in Delhi", true},
		{"latest news about the election", true},
		{"who won the match", true},
		{"WEATHER forecast", true},
		{"hello, how are you?", false},
		{"explain recursion to me", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := c.NeedsSearch(tt.message); got != tt.want {
			t.Errorf("NeedsSearch(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestClassifier_NeedsImages(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		message string
		want    bool
	}{
		{"show me pictures of the Eiffel Tower", true},
		{"what does a black hole look like", true},
		{"send image of a sunset", true},
		{"hello, how are you?", false},
		{"explain recursion to me", false},
	}

	for _, tt := range tests {
		if got := c.NeedsImages(tt.message); got != tt.want {
			t.Errorf("NeedsImages(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestClassifier_IsImageOnlyRequest(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		message string
		want    bool
	}{
		{"show a picture of mars", true},
		{"can you provide an image of saturn", true},
		{"please send a photo", true},
		{"could you display img of a cat", true},
		{"give me a picture of the moon", true},
		{"what does mars look like", false},
		{"the picture you sent was great", false},
		{"hello", false},
	}

	for _, tt := range tests {
		if got := c.IsImageOnlyRequest(tt.message); got != tt.want {
			t.Errorf("IsImageOnlyRequest(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestClassifier_IndependentPredicates(t *testing.T) {
	c := newTestClassifier()

	// A message can trigger both, either, or neither.
	msg := "show me pictures of today's weather"
	if !c.NeedsSearch(msg) || !c.NeedsImages(msg) {
		t.Errorf("expected both predicates true for %q", msg)
	}
	msg = "tell me a joke"
	if c.NeedsSearch(msg) || c.NeedsImages(msg) {
		t.Errorf("expected both predicates false for %q", msg)
	}
}
