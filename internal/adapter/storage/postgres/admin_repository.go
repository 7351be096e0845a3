package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haven-wellness/concierge/internal/ports"
)

type AdminRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAdminRepository(db *gorm.DB, log *zap.Logger) ports.AdminRepository {
	return &AdminRepository{
		db:  db,
		log: log,
	}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*ports.Admin, error) {
	var admin ports.Admin
	err := r.db.WithContext(ctx).First(&admin, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) Save(ctx context.Context, admin *ports.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}
