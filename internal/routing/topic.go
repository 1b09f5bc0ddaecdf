package routing

import (
	"strings"

	"github.com/hackterm/chat-backend/internal"
)

// ResolveTopic maps a follow-up like "show images of that" back to the
// prior substantive topic. When the message carries image intent or a
// back-reference marker and history is non-empty, it returns the most
// recent of the last 3 user messages that are not themselves bare image
// requests. In every other case, including when nothing substantive
// survives the filter, it returns the message unchanged, so the result is
// never empty.
func (c *Classifier) ResolveTopic(message string, history []internal.Message) string {
	lower := strings.ToLower(message)
	hasRef := containsAny(lower, c.referenceTerms)

	if (c.NeedsImages(message) || hasRef) && len(history) > 0 {
		var recent []string
		for _, msg := range history {
			if msg.Role != internal.RoleUser {
				continue
			}
			if imageRequestPattern.MatchString(strings.ToLower(msg.Content)) {
				continue
			}
			recent = append(recent, msg.Content)
		}
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		if len(recent) > 0 {
			return recent[len(recent)-1]
		}
	}

	return message
}
