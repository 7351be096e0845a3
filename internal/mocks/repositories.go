package mocks

import (
	"context"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/ports"
)

// MockProgramRepository is a mock implementation of ProgramRepository interface
type MockProgramRepository struct {
	SaveFunc       func(ctx context.Context, program *domain.Program) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Program, error)
	FindByNameFunc func(ctx context.Context, name string) (*domain.Program, error)
	FindAllFunc    func(ctx context.Context) ([]domain.Program, error)
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *MockProgramRepository) Save(ctx context.Context, program *domain.Program) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, program)
	}
	return nil
}

func (m *MockProgramRepository) FindByID(ctx context.Context, id string) (*domain.Program, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProgramRepository) FindByName(ctx context.Context, name string) (*domain.Program, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockProgramRepository) FindAll(ctx context.Context) ([]domain.Program, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.Program{}, nil
}

func (m *MockProgramRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockConversationRepository is a mock implementation of ConversationRepository interface
type MockConversationRepository struct {
	SaveLogFunc        func(ctx context.Context, log *domain.ConversationLog) error
	FindBySessionFunc  func(ctx context.Context, sessionID string, limit int) ([]domain.ConversationLog, error)
	SaveActivationFunc func(ctx context.Context, activation *domain.GuardrailActivation) error
}

func (m *MockConversationRepository) SaveLog(ctx context.Context, log *domain.ConversationLog) error {
	if m.SaveLogFunc != nil {
		return m.SaveLogFunc(ctx, log)
	}
	return nil
}

func (m *MockConversationRepository) FindBySession(ctx context.Context, sessionID string, limit int) ([]domain.ConversationLog, error) {
	if m.FindBySessionFunc != nil {
		return m.FindBySessionFunc(ctx, sessionID, limit)
	}
	return []domain.ConversationLog{}, nil
}

func (m *MockConversationRepository) SaveActivation(ctx context.Context, activation *domain.GuardrailActivation) error {
	if m.SaveActivationFunc != nil {
		return m.SaveActivationFunc(ctx, activation)
	}
	return nil
}

// MockAdminRepository is a mock implementation of AdminRepository interface
type MockAdminRepository struct {
	FindByEmailFunc func(ctx context.Context, email string) (*ports.Admin, error)
	SaveFunc        func(ctx context.Context, admin *ports.Admin) error
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*ports.Admin, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockAdminRepository) Save(ctx context.Context, admin *ports.Admin) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, admin)
	}
	return nil
}
