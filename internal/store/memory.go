// Package store keeps per-conversation message history in memory. Durable
// persistence belongs to the frontend's database; this store only feeds the
// recent-history window into the generation prompt.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hackterm/chat-backend/internal"
)

var ErrNotFound = errors.New("conversation not found")

type MemoryStore struct {
	mu            sync.Mutex
	conversations map[string][]internal.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conversations: make(map[string][]internal.Message)}
}

// Create starts an empty conversation and returns its id.
func (s *MemoryStore) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[id] = make([]internal.Message, 0, 16)
	return id
}

// Append adds a message to the conversation, stamping id and time when the
// caller left them zero. Appending to an unknown conversation creates it,
// so clients may supply their own ids.
func (s *MemoryStore) Append(conversationID string, msg internal.Message) internal.Message {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conversationID] = append(s.conversations[conversationID], msg)
	return msg
}

// Messages returns a copy of the full conversation, oldest first.
func (s *MemoryStore) Messages(conversationID string) ([]internal.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]internal.Message, len(msgs))
	copy(cp, msgs)
	return cp, nil
}

// Recent returns a copy of the last n messages, oldest first. An unknown
// conversation yields an empty window, not an error: the chat endpoint
// treats missing history as "no context".
func (s *MemoryStore) Recent(conversationID string, n int) []internal.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.conversations[conversationID]
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	cp := make([]internal.Message, len(msgs))
	copy(cp, msgs)
	return cp
}

// Delete removes the conversation entirely.
func (s *MemoryStore) Delete(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
}
