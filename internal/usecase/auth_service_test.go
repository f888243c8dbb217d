package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/infrastructure/auth"
)

func newAuthService(userRepo *MockUserRepository, tokenRepo *MockRefreshTokenRepository) *AuthService {
	return NewAuthService(userRepo, tokenRepo, auth.NewPasswordManager(), auth.NewJWTManager())
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()

	savedHash := ""
	mockUserRepo := &MockUserRepository{
		CreateWithAuthFunc: func(ctx context.Context, req *entity.RegisterRequest, passwordHash string) (*entity.User, error) {
			savedHash = passwordHash
			email := req.Email
			return &entity.User{ID: 1, Name: req.Name, Email: &email, Role: req.Role, IsActive: true}, nil
		},
	}

	service := newAuthService(mockUserRepo, &MockRefreshTokenRepository{})

	resp, err := service.Register(ctx, &entity.RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "password123",
		Role:     entity.RoleClient,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("Expected both tokens to be issued")
	}
	if savedHash == "password123" {
		t.Error("Expected password to be hashed before storage")
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	service := newAuthService(&MockUserRepository{}, &MockRefreshTokenRepository{})

	badRate := -10.0
	cases := []struct {
		name string
		req  *entity.RegisterRequest
	}{
		{"empty name", &entity.RegisterRequest{Email: "a@b.c", Password: "password123", Role: entity.RoleClient}},
		{"short password", &entity.RegisterRequest{Name: "A", Email: "a@b.c", Password: "short", Role: entity.RoleClient}},
		{"admin role", &entity.RegisterRequest{Name: "A", Email: "a@b.c", Password: "password123", Role: entity.RoleAdmin}},
		{"negative rate", &entity.RegisterRequest{Name: "A", Email: "a@b.c", Password: "password123", Role: entity.RoleTasker, HourlyRate: &badRate}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(ctx, tc.req)
			var validationErr *entity.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: 1}, nil
		},
	}

	service := newAuthService(mockUserRepo, &MockRefreshTokenRepository{})

	_, err := service.Register(ctx, &entity.RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "password123",
		Role:     entity.RoleClient,
	})
	if !errors.Is(err, entity.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()

	passwordManager := auth.NewPasswordManager()
	hash, err := passwordManager.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: 1, PasswordHash: hash, IsActive: true}, nil
		},
	}

	service := newAuthService(mockUserRepo, &MockRefreshTokenRepository{})

	_, err = service.Login(ctx, &entity.LoginRequest{Email: "maria@example.com", Password: "wrong-password"})
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	ctx := context.Background()

	service := newAuthService(&MockUserRepository{}, &MockRefreshTokenRepository{})

	_, err := service.Login(ctx, &entity.LoginRequest{Email: "unknown@example.com", Password: "whatever"})
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: 1, IsActive: false}, nil
		},
	}

	service := newAuthService(mockUserRepo, &MockRefreshTokenRepository{})

	_, err := service.Login(ctx, &entity.LoginRequest{Email: "maria@example.com", Password: "password123"})
	if !errors.Is(err, entity.ErrUserNotActive) {
		t.Errorf("Expected ErrUserNotActive, got %v", err)
	}
}
