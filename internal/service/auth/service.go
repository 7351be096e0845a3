package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/haven-wellness/concierge/internal/ports"
)

const tokenTTL = 8 * time.Hour

type Service struct {
	adminRepo ports.AdminRepository
	jwtSecret []byte
	log       *zap.Logger
}

func NewService(adminRepo ports.AdminRepository, jwtSecret string, log *zap.Logger) ports.AuthService {
	return &Service{
		adminRepo: adminRepo,
		jwtSecret: []byte(jwtSecret),
		log:       log,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}
	if admin == nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  admin.Email,
		"role": admin.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*ports.Admin, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	email, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid sub")
	}

	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil || admin == nil {
		return nil, errors.New("admin not found")
	}
	return admin, nil
}

// HashPassword is used when seeding or creating admin accounts.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
