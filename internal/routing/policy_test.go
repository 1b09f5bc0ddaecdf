package routing

import "testing"

func TestPolicyFilter_Blocked(t *testing.T) {
	f := NewPolicyFilter([]string{"porn", "nude", "violence", "18+"})

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"clean greeting", "hello, how are you?", false},
		{"exact term", "nude", true},
		{"term inside sentence", "show me nude pictures", true},
		{"case insensitive", "NUDE photos please", true},
		{"substring over-block", "the nudenet model", true},
		{"symbol term", "any 18+ content", true},
		{"violence term", "graphic violence footage", true},
		{"empty message", "", false},
		{"unrelated topic", "explain quicksort", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Blocked(tt.message); got != tt.want {
				t.Errorf("Blocked(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestPolicyFilter_EmptyList(t *testing.T) {
	f := NewPolicyFilter(nil)
	if f.Blocked("anything at all") {
		t.Error("empty block-list should never block")
	}
}
