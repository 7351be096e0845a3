package domain

import "time"

// ChatMessage is one turn of conversation history, supplied fresh by the
// caller on every request. Role is "user" or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// KnowledgeChunk is a retrieved fragment from the document knowledge base.
type KnowledgeChunk struct {
	Content        string  `json:"content"`
	Source         string  `json:"source"`
	Type           string  `json:"type"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ChatResponse is what one processed turn returns to the transport layer.
type ChatResponse struct {
	Text       string   `json:"text"`
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Flags      []string `json:"flags,omitempty"`
	Sources    []string `json:"sources,omitempty"`
}

// ConversationLog is the persisted record of one turn. Written by the log
// sink asynchronously; logging failure never fails the user-facing turn.
type ConversationLog struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"session_id" gorm:"index"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Intent    string    `json:"intent"`
	Flags     string    `json:"flags"`   // comma-joined
	Sources   string    `json:"sources"` // comma-joined
	CreatedAt time.Time `json:"created_at"`
}

// GuardrailActivation is the audit record for one safety redirect or block.
type GuardrailActivation struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"session_id" gorm:"index"`
	Rule      string    `json:"rule"`
	Pattern   string    `json:"pattern"`
	Excerpt   string    `json:"excerpt"` // truncated copy of the user message
	Before    string    `json:"before,omitempty"`
	After     string    `json:"after,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
