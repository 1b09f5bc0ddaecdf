package provider

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hackterm/chat-backend/internal"
)

// headingPattern matches markdown heading markers the model tends to emit
// despite instructions. They render badly in the terminal UI.
var headingPattern = regexp.MustCompile(`#{1,6}\s`)

// systemInstruction is the persona/style policy sent with every call. The
// prefix is injected so the core never hardcodes UI persona text.
func systemInstruction(prefix string) string {
	return fmt.Sprintf(`You are a hybrid AI agent combining advanced reasoning with real-time web search integration.

Rules:
- When search results are provided in the user's message, they contain live, current data that is more recent than your training knowledge. You must prioritize that data for time-sensitive queries and use times, dates, temperatures, and facts exactly as provided in the snippets.
- Do not make up current information. If no search results are provided, use your training knowledge and be honest about your cutoff when relevant.
- Synthesize sources naturally; never say "according to search results" or name the search engine.

Style:
- Start every response with "%s "
- Be conversational, friendly, and helpful (like J.A.R.V.I.S.)
- Use clear formatting with bullet points and numbered lists
- Include relevant links using markdown format: [text](url)
- Use emojis naturally for engagement
- Be concise but comprehensive

For image requests: acknowledge the topic and mention the images are being displayed; do not describe URLs or technical details.`, prefix)
}

// realTimeInstructions is appended after the search context in the outgoing
// user turn, directing the model to prefer the supplied data over training
// knowledge.
const realTimeInstructions = `

CRITICAL INSTRUCTIONS:
1. The search results above contain REAL-TIME, LIVE DATA.
2. This data is MORE RECENT than your training cutoff date.
3. Prioritize and use this real-time data in your response.
4. If the results include time, date, year, or current information, use it exactly as provided.
5. Do NOT rely on training data for time-sensitive information.
6. Format your response naturally and conversationally, with markdown links where relevant.
7. If images are available, mention them naturally; they display separately.`

// buildUserTurn returns the outgoing user message. When search carries at
// least one entry, the message is concatenated with a formatted rendering
// of the search data plus the real-time instruction block.
func buildUserTurn(message string, search *internal.SearchResult) string {
	if search.Empty() {
		return message
	}
	return message + formatSearchContext(search) + realTimeInstructions
}

func formatSearchContext(search *internal.SearchResult) string {
	var b strings.Builder
	b.WriteString("\n\n📊 REAL-TIME SEARCH DATA:\n\n")

	if len(search.Web) > 0 {
		b.WriteString("🔍 Web Results:\n")
		for i, r := range search.Web {
			fmt.Fprintf(&b, "%d. %s\n   📝 %s\n   🔗 %s\n\n", i+1, r.Title, r.Snippet, r.Link)
		}
	}

	if len(search.Images) > 0 {
		b.WriteString("🖼️ Image Results:\n")
		for i, r := range search.Images {
			fmt.Fprintf(&b, "%d. %s\n   🔗 %s\n", i+1, r.Title, r.Link)
		}
		b.WriteString("\nNote: these images will be displayed directly in the chat.\n")
	}

	return b.String()
}

// sanitizeReply strips markdown emphasis and heading markers (emojis and
// structure survive) and enforces the response-prefix convention.
func sanitizeReply(text, prefix string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = headingPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, prefix) {
		text = prefix + " " + text
	}
	return text
}
