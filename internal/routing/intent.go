package routing

import (
	"regexp"
	"strings"

	"github.com/hackterm/chat-backend/internal"
)

// imageRequestPattern matches messages that are bare image requests
// ("show me a picture", "can you provide an img") rather than questions
// that happen to mention images.
var imageRequestPattern = regexp.MustCompile(`^(can you |please |could you )?(provide|show|display|send|give me) (an? )?(img|image|picture|photo)`)

// Decision is the classification outcome for one message. It is computed
// once per request and not retained.
type Decision struct {
	NeedsSearch bool
	NeedsImages bool
	ImageOnly   bool
	// Topic is the query to search for. It is never empty: when no
	// back-reference is detected it is the original message verbatim.
	Topic string
}

// Classifier derives a Decision from keyword tables. Both predicates are
// cheap substring heuristics rather than a learned classifier: a false
// positive only adds an idempotent search call, a false negative only falls
// back to pure generation.
type Classifier struct {
	searchTerms    []string
	imageTerms     []string
	referenceTerms []string
}

func NewClassifier(searchTerms, imageTerms, referenceTerms []string) *Classifier {
	return &Classifier{
		searchTerms:    lowerAll(searchTerms),
		imageTerms:     lowerAll(imageTerms),
		referenceTerms: lowerAll(referenceTerms),
	}
}

// NeedsSearch reports whether the message asks for real-time data.
func (c *Classifier) NeedsSearch(message string) bool {
	return containsAny(strings.ToLower(message), c.searchTerms)
}

// NeedsImages reports whether the message asks for visual content.
func (c *Classifier) NeedsImages(message string) bool {
	return containsAny(strings.ToLower(message), c.imageTerms)
}

// IsImageOnlyRequest reports whether the message is purely an image
// request with no informational ask.
func (c *Classifier) IsImageOnlyRequest(message string) bool {
	return imageRequestPattern.MatchString(strings.ToLower(message))
}

// Classify computes the full routing decision, resolving the search topic
// against recent history when the message back-references an earlier turn.
func (c *Classifier) Classify(message string, history []internal.Message) Decision {
	d := Decision{
		NeedsSearch: c.NeedsSearch(message),
		NeedsImages: c.NeedsImages(message),
		ImageOnly:   c.IsImageOnlyRequest(message),
	}
	d.Topic = c.ResolveTopic(message, history)
	return d
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}

func containsAny(lower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
