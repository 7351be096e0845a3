package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/haven-wellness/concierge/internal/mocks"
	"github.com/haven-wellness/concierge/internal/ports"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	mockAdmin := &ports.Admin{
		ID:           "admin-123",
		Email:        "ops@example.com",
		PasswordHash: string(hashedPassword),
		Role:         "admin",
	}

	mockRepo := &mocks.MockAdminRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*ports.Admin, error) {
			if email == "ops@example.com" {
				return mockAdmin, nil
			}
			return nil, nil
		},
	}

	service := NewService(mockRepo, "test-secret-key", newTestLogger())

	// Act
	token, err := service.Login(ctx, "ops@example.com", password)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token, got empty string")
	}
}

func TestLogin_InvalidEmail(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockAdminRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*ports.Admin, error) {
			return nil, nil // Admin not found
		},
	}

	service := NewService(mockRepo, "test-secret-key", newTestLogger())

	// Act
	_, err := service.Login(ctx, "notfound@example.com", "password")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "invalid credentials" {
		t.Errorf("expected 'invalid credentials', got '%s'", err.Error())
	}
}

func TestLogin_InvalidPassword(t *testing.T) {
	// Arrange
	ctx := context.Background()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correctpassword"), bcrypt.DefaultCost)

	mockAdmin := &ports.Admin{
		ID:           "admin-123",
		Email:        "ops@example.com",
		PasswordHash: string(hashedPassword),
	}

	mockRepo := &mocks.MockAdminRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*ports.Admin, error) {
			return mockAdmin, nil
		},
	}

	service := NewService(mockRepo, "test-secret-key", newTestLogger())

	// Act
	_, err := service.Login(ctx, "ops@example.com", "wrongpassword")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "invalid credentials" {
		t.Errorf("expected 'invalid credentials', got '%s'", err.Error())
	}
}

func TestLogin_RepositoryError(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockAdminRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*ports.Admin, error) {
			return nil, errors.New("database error")
		},
	}

	service := NewService(mockRepo, "test-secret-key", newTestLogger())

	// Act
	_, err := service.Login(ctx, "ops@example.com", "password")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestValidateToken_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	jwtSecret := "test-secret-key"

	mockAdmin := &ports.Admin{
		ID:    "admin-123",
		Email: "ops@example.com",
		Role:  "admin",
	}

	mockRepo := &mocks.MockAdminRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*ports.Admin, error) {
			if email == "ops@example.com" {
				return mockAdmin, nil
			}
			return nil, nil
		},
	}

	service := NewService(mockRepo, jwtSecret, newTestLogger())

	// Create a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ops@example.com",
		"role": "admin",
		"exp":  time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenStr, _ := token.SignedString([]byte(jwtSecret))

	// Act
	admin, err := service.ValidateToken(ctx, tokenStr)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if admin == nil {
		t.Fatal("expected admin, got nil")
	}
	if admin.Email != "ops@example.com" {
		t.Errorf("expected email 'ops@example.com', got '%s'", admin.Email)
	}
}

func TestValidateToken_InvalidToken(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockAdminRepository{}
	service := NewService(mockRepo, "test-secret-key", newTestLogger())

	// Act
	_, err := service.ValidateToken(ctx, "invalid-token")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	jwtSecret := "test-secret-key"

	mockRepo := &mocks.MockAdminRepository{}
	service := NewService(mockRepo, jwtSecret, newTestLogger())

	// Create an expired token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ops@example.com",
		"role": "admin",
		"exp":  time.Now().Add(-1 * time.Hour).Unix(), // Expired
	})
	tokenStr, _ := token.SignedString([]byte(jwtSecret))

	// Act
	_, err := service.ValidateToken(ctx, tokenStr)

	// Assert
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestHashPassword_NotPlaintext(t *testing.T) {
	// Act
	hashed, err := HashPassword("secret-password")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hashed == "secret-password" {
		t.Error("password should be hashed, not plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("secret-password")); err != nil {
		t.Errorf("hash should verify against original password: %v", err)
	}
}
