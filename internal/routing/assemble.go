package routing

import "github.com/hackterm/chat-backend/internal"

// assemble builds the final payload. searchResults is included only when at
// least one web or image entry exists: its absence, not empty arrays, is how
// the client learns that no search was performed.
func assemble(text string, results *internal.SearchResult) *internal.ChatResponse {
	resp := &internal.ChatResponse{Response: text}
	if !results.Empty() {
		resp.SearchResults = results
	}
	return resp
}
