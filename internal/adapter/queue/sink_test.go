package queue

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/mocks"
)

func TestSinkAndPersister_ConversationLogRoundTrip(t *testing.T) {
	// Arrange
	q := mocks.NewMockQueue()
	var saved []domain.ConversationLog
	repo := &mocks.MockConversationRepository{
		SaveLogFunc: func(ctx context.Context, log *domain.ConversationLog) error {
			saved = append(saved, *log)
			return nil
		},
	}
	persister := NewPersister(q, repo, zap.NewNop())
	if err := persister.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sink := NewNATSSink(q, zap.NewNop())

	// Act
	sink.Log("s1", "what is breathwork?", "A guided practice.", domain.IntentKnowledge,
		[]string{"judgmental_time_fix"}, []string{"kb/breathwork.md", "kb/faq.md"})

	// Assert
	if len(saved) != 1 {
		t.Fatalf("persisted logs = %d, want 1", len(saved))
	}
	got := saved[0]
	if got.SessionID != "s1" || got.Question != "what is breathwork?" {
		t.Errorf("persisted log = %+v", got)
	}
	if got.Intent != string(domain.IntentKnowledge) {
		t.Errorf("intent = %q", got.Intent)
	}
	if got.Flags != "judgmental_time_fix" {
		t.Errorf("flags = %q", got.Flags)
	}
	if got.Sources != "kb/breathwork.md,kb/faq.md" {
		t.Errorf("sources = %q", got.Sources)
	}
	if got.ID == "" {
		t.Error("persisted log must carry an ID")
	}
}

func TestSinkAndPersister_ActivationRoundTrip(t *testing.T) {
	q := mocks.NewMockQueue()
	var saved []domain.GuardrailActivation
	repo := &mocks.MockConversationRepository{
		SaveActivationFunc: func(ctx context.Context, activation *domain.GuardrailActivation) error {
			saved = append(saved, *activation)
			return nil
		},
	}
	persister := NewPersister(q, repo, zap.NewNop())
	if err := persister.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sink := NewNATSSink(q, zap.NewNop())

	sink.Activation(domain.GuardrailActivation{ID: "a1", SessionID: "s1", Rule: "crisis_redirect"})

	if len(saved) != 1 {
		t.Fatalf("persisted activations = %d, want 1", len(saved))
	}
	if saved[0].Rule != "crisis_redirect" || saved[0].SessionID != "s1" {
		t.Errorf("persisted activation = %+v", saved[0])
	}
}

func TestPersister_MalformedPayloadSwallowed(t *testing.T) {
	q := mocks.NewMockQueue()
	repo := &mocks.MockConversationRepository{
		SaveLogFunc: func(ctx context.Context, log *domain.ConversationLog) error {
			t.Fatal("malformed payloads must not reach the store")
			return nil
		},
	}
	persister := NewPersister(q, repo, zap.NewNop())
	if err := persister.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := q.Publish(SubjectConversationLogged, []byte("{not json")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestSink_PublishesToBothSubjects(t *testing.T) {
	q := mocks.NewMockQueue()
	sink := NewNATSSink(q, zap.NewNop())

	sink.Log("s1", "q", "a", domain.IntentGreeting, nil, nil)
	sink.Activation(domain.GuardrailActivation{Rule: "pii_request_block"})

	if len(q.Published[SubjectConversationLogged]) != 1 {
		t.Errorf("conversation.logged publishes = %d, want 1", len(q.Published[SubjectConversationLogged]))
	}
	if len(q.Published[SubjectGuardrailActivated]) != 1 {
		t.Errorf("guardrail.activated publishes = %d, want 1", len(q.Published[SubjectGuardrailActivated]))
	}
}
