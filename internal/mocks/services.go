package mocks

import (
	"context"
	"sync"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/ports"
)

// MockKnowledgeSearcher is a mock implementation of KnowledgeSearcher interface
type MockKnowledgeSearcher struct {
	SearchFunc func(ctx context.Context, query string, k int) []domain.KnowledgeChunk
}

func (m *MockKnowledgeSearcher) Search(ctx context.Context, query string, k int) []domain.KnowledgeChunk {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, k)
	}
	return nil
}

// MockEventService is a mock implementation of EventService interface
type MockEventService struct {
	ListUpcomingFunc func(ctx context.Context, limit int) ([]domain.Event, error)
	GetByTitleFunc   func(ctx context.Context, fuzzyTitle string) (*domain.Event, error)
	BookFunc         func(ctx context.Context, event *domain.Event, calendarID string) (*domain.BookingResult, error)
}

func (m *MockEventService) ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	if m.ListUpcomingFunc != nil {
		return m.ListUpcomingFunc(ctx, limit)
	}
	return []domain.Event{}, nil
}

func (m *MockEventService) GetByTitle(ctx context.Context, fuzzyTitle string) (*domain.Event, error) {
	if m.GetByTitleFunc != nil {
		return m.GetByTitleFunc(ctx, fuzzyTitle)
	}
	return nil, domain.ErrNotFound
}

func (m *MockEventService) Book(ctx context.Context, event *domain.Event, calendarID string) (*domain.BookingResult, error) {
	if m.BookFunc != nil {
		return m.BookFunc(ctx, event, calendarID)
	}
	return &domain.BookingResult{Success: true}, nil
}

// MockChatModel is a mock implementation of ChatModel interface
type MockChatModel struct {
	ChatCompletionFunc       func(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (string, error)
	ChatCompletionStreamFunc func(ctx context.Context, messages []domain.ChatMessage, maxTokens int, onChunk func(string)) error
	ConfiguredFunc           func() bool
}

func (m *MockChatModel) ChatCompletion(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (string, error) {
	if m.ChatCompletionFunc != nil {
		return m.ChatCompletionFunc(ctx, messages, maxTokens)
	}
	return "", nil
}

func (m *MockChatModel) ChatCompletionStream(ctx context.Context, messages []domain.ChatMessage, maxTokens int, onChunk func(string)) error {
	if m.ChatCompletionStreamFunc != nil {
		return m.ChatCompletionStreamFunc(ctx, messages, maxTokens, onChunk)
	}
	if m.ChatCompletionFunc != nil {
		text, err := m.ChatCompletionFunc(ctx, messages, maxTokens)
		if err != nil {
			return err
		}
		onChunk(text)
	}
	return nil
}

func (m *MockChatModel) Configured() bool {
	if m.ConfiguredFunc != nil {
		return m.ConfiguredFunc()
	}
	return true
}

// MockConversationSink records logged turns and activations for assertions.
type MockConversationSink struct {
	mu          sync.Mutex
	Logs        []domain.ConversationLog
	Activations []domain.GuardrailActivation
}

func (m *MockConversationSink) Log(sessionID, question, answer string, intent domain.Intent, flags, sources []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, domain.ConversationLog{
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Intent:    string(intent),
	})
}

func (m *MockConversationSink) Activation(activation domain.GuardrailActivation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Activations = append(m.Activations, activation)
}

// MockCatalog is a mock implementation of Catalog interface
type MockCatalog struct {
	EventTitlesList  []string
	ProgramNamesList []string
	ProgramsList     []domain.Program
	RefreshFunc      func(ctx context.Context) error
}

func (m *MockCatalog) EventTitles() []string {
	return m.EventTitlesList
}

func (m *MockCatalog) ProgramNames() []string {
	return m.ProgramNamesList
}

func (m *MockCatalog) Programs() []domain.Program {
	return m.ProgramsList
}

func (m *MockCatalog) ProgramByName(name string) (*domain.Program, bool) {
	for i := range m.ProgramsList {
		if m.ProgramsList[i].Name == name {
			return &m.ProgramsList[i], true
		}
	}
	return nil, false
}

func (m *MockCatalog) Refresh(ctx context.Context) error {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

// MockAuthService is a mock implementation of AuthService interface
type MockAuthService struct {
	LoginFunc         func(ctx context.Context, email, password string) (string, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*ports.Admin, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*ports.Admin, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, nil
}
