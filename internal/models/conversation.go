package models

import (
	"encoding/json"
	"time"
)

// Conversation is one persisted chat transcript. Messages are kept opaque:
// the store writes back exactly what the client supplied.
type Conversation struct {
	Name     string            `json:"name"`
	Created  time.Time         `json:"created"`
	Messages []json.RawMessage `json:"messages"`
}

// ConversationSummary is the listing view of a stored conversation.
type ConversationSummary struct {
	Filename     string    `json:"filename"`
	Name         string    `json:"name"`
	Created      time.Time `json:"created"`
	MessageCount int       `json:"message_count"`
}
