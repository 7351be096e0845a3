package ports

import (
	"context"
	"time"

	"github.com/haven-wellness/concierge/internal/domain"
)

// KnowledgeSearcher retrieves relevant document chunks for a query. It must
// return an empty slice, never an error, when the underlying store is empty
// or keeps failing after bounded retries.
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string, k int) []domain.KnowledgeChunk
}

// EventService is the structured calendar lookup. Timeouts, connection
// failures and 5xx responses surface as domain.ErrCalendarUnavailable.
type EventService interface {
	ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error)
	GetByTitle(ctx context.Context, fuzzyTitle string) (*domain.Event, error)
	Book(ctx context.Context, event *domain.Event, calendarID string) (*domain.BookingResult, error)
}

// ChatModel is the black-box text-completion service. The core never depends
// on a specific model's quirks beyond "returns prose it may imperfectly
// follow instructions in".
type ChatModel interface {
	ChatCompletion(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (string, error)
	ChatCompletionStream(ctx context.Context, messages []domain.ChatMessage, maxTokens int, onChunk func(string)) error
	// Configured reports whether credentials are present. When false every
	// LLM-backed path short-circuits to the fixed unavailable message.
	Configured() bool
}

// ConversationSink records a completed turn. Fire-and-forget: implementations
// must never block or fail the user-facing turn.
type ConversationSink interface {
	Log(sessionID, question, answer string, intent domain.Intent, flags, sources []string)
	Activation(activation domain.GuardrailActivation)
}

// Catalog exposes the router's periodically refreshed known-title lists. Both
// getters must be safe to call concurrently with Refresh.
type Catalog interface {
	EventTitles() []string
	ProgramNames() []string
	Programs() []domain.Program
	ProgramByName(name string) (*domain.Program, bool)
	Refresh(ctx context.Context) error
}

// Cache is a simple string cache, redis-backed in production.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

// AuthService guards the admin catalog endpoints.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	ValidateToken(ctx context.Context, token string) (*Admin, error)
}
