package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/ports"
)

type ProgramRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProgramRepository(db *gorm.DB, log *zap.Logger) ports.ProgramRepository {
	return &ProgramRepository{
		db:  db,
		log: log,
	}
}

func (r *ProgramRepository) Save(ctx context.Context, program *domain.Program) error {
	return r.db.WithContext(ctx).Save(program).Error
}

func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*domain.Program, error) {
	var program domain.Program
	err := r.db.WithContext(ctx).Preload("PaymentOptions").First(&program, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) FindByName(ctx context.Context, name string) (*domain.Program, error) {
	var program domain.Program
	err := r.db.WithContext(ctx).Preload("PaymentOptions").First(&program, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) FindAll(ctx context.Context) ([]domain.Program, error) {
	var programs []domain.Program
	err := r.db.WithContext(ctx).Preload("PaymentOptions").Order("name asc").Find(&programs).Error
	return programs, err
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Program{}, "id = ?", id).Error
}
