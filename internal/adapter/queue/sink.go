package queue

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/ports"
)

// Subjects for the conversation audit stream.
const (
	SubjectConversationLogged = "conversation.logged"
	SubjectGuardrailActivated = "guardrail.activated"
)

// NATSSink publishes turn logs and guardrail activations to the queue.
// Fire-and-forget: publish errors are logged and swallowed so the user-facing
// turn never waits on or fails with the audit path.
type NATSSink struct {
	queue MessageQueue
	log   *zap.Logger
}

func NewNATSSink(queue MessageQueue, log *zap.Logger) ports.ConversationSink {
	return &NATSSink{queue: queue, log: log}
}

func (s *NATSSink) Log(sessionID, question, answer string, intent domain.Intent, flags, sources []string) {
	entry := domain.ConversationLog{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Intent:    string(intent),
		Flags:     strings.Join(flags, ","),
		Sources:   strings.Join(sources, ","),
		CreatedAt: time.Now().UTC(),
	}
	s.publish(SubjectConversationLogged, entry)
}

func (s *NATSSink) Activation(activation domain.GuardrailActivation) {
	s.publish(SubjectGuardrailActivated, activation)
}

func (s *NATSSink) publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("failed to marshal audit payload", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.queue.Publish(subject, data); err != nil {
		s.log.Error("failed to publish audit payload", zap.String("subject", subject), zap.Error(err))
	}
}

// Persister consumes the audit stream and writes it to the conversation
// store. Runs in-process; a dedicated consumer service can take over the same
// subjects later without touching the publisher.
type Persister struct {
	queue MessageQueue
	repo  ports.ConversationRepository
	log   *zap.Logger
}

func NewPersister(queue MessageQueue, repo ports.ConversationRepository, log *zap.Logger) *Persister {
	return &Persister{queue: queue, repo: repo, log: log}
}

// Start subscribes to both audit subjects. Handlers log and swallow write
// errors; a failed insert never propagates back to the queue.
func (p *Persister) Start(ctx context.Context) error {
	err := p.queue.Subscribe(SubjectConversationLogged, func(data []byte) error {
		var entry domain.ConversationLog
		if err := json.Unmarshal(data, &entry); err != nil {
			p.log.Error("malformed conversation log payload", zap.Error(err))
			return nil
		}
		if err := p.repo.SaveLog(ctx, &entry); err != nil {
			p.log.Error("failed to persist conversation log", zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return p.queue.Subscribe(SubjectGuardrailActivated, func(data []byte) error {
		var activation domain.GuardrailActivation
		if err := json.Unmarshal(data, &activation); err != nil {
			p.log.Error("malformed guardrail activation payload", zap.Error(err))
			return nil
		}
		if err := p.repo.SaveActivation(ctx, &activation); err != nil {
			p.log.Error("failed to persist guardrail activation", zap.Error(err))
		}
		return nil
	})
}
