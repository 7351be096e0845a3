package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/ports"
)

type ConversationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConversationRepository(db *gorm.DB, log *zap.Logger) ports.ConversationRepository {
	return &ConversationRepository{
		db:  db,
		log: log,
	}
}

func (r *ConversationRepository) SaveLog(ctx context.Context, entry *domain.ConversationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ConversationRepository) FindBySession(ctx context.Context, sessionID string, limit int) ([]domain.ConversationLog, error) {
	var logs []domain.ConversationLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *ConversationRepository) SaveActivation(ctx context.Context, activation *domain.GuardrailActivation) error {
	return r.db.WithContext(ctx).Create(activation).Error
}
