package ports

import (
	"context"

	"github.com/haven-wellness/concierge/internal/domain"
)

// ProgramRepository persists the program catalog, the single source of truth
// for enrollment prices and checkout URLs.
type ProgramRepository interface {
	Save(ctx context.Context, program *domain.Program) error
	FindByID(ctx context.Context, id string) (*domain.Program, error)
	FindByName(ctx context.Context, name string) (*domain.Program, error)
	FindAll(ctx context.Context) ([]domain.Program, error)
	Delete(ctx context.Context, id string) error
}

// ConversationRepository persists turn logs and guardrail activations. All
// writes happen off the request path; failures are logged, never surfaced.
type ConversationRepository interface {
	SaveLog(ctx context.Context, log *domain.ConversationLog) error
	FindBySession(ctx context.Context, sessionID string, limit int) ([]domain.ConversationLog, error)
	SaveActivation(ctx context.Context, activation *domain.GuardrailActivation) error
}

// AdminRepository stores operator accounts for the catalog API.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	Save(ctx context.Context, admin *Admin) error
}

// Admin is an operator of the program catalog.
type Admin struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         string
}
