package internal

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string    `json:"id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHistory struct {
	Messages []Message `json:"messages"`
}

type ChatRequest struct {
	Message        string    `json:"message"`
	Context        []Message `json:"context,omitempty"`
	ConversationID string    `json:"conversation_id,omitempty"`
}

type ChatResponse struct {
	Response       string        `json:"response"`
	SearchResults  *SearchResult `json:"searchResults,omitempty"`
	ConversationID string        `json:"conversation_id,omitempty"`
}

// WebResult is one ranked web hit, reduced to what the chat UI renders.
type WebResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// ImageResult is one image hit. Link is the absolute image URL and is the
// deduplication key.
type ImageResult struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail"`
}

// SearchResult is the normalized payload shaped by the search gateway.
type SearchResult struct {
	Web    []WebResult   `json:"web"`
	Images []ImageResult `json:"images"`
}

// Empty reports whether the result carries no usable entries. An empty
// result is never surfaced to the client.
func (r *SearchResult) Empty() bool {
	return r == nil || (len(r.Web) == 0 && len(r.Images) == 0)
}

type CreateConversationResponse struct {
	ID string `json:"id"`
}

type DownloadImageRequest struct {
	ImageURL string `json:"imageUrl"`
}
