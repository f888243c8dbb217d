package entity

import "time"

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleTasker UserRole = "tasker"
	RoleAdmin  UserRole = "admin"
)

func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleClient, RoleTasker, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        *string    `json:"email,omitempty"`
	PasswordHash string     `json:"-"` // Никогда не отправляем пароль
	Role         UserRole   `json:"user_type"`
	Bio          *string    `json:"bio,omitempty"`
	HourlyRate   *float64   `json:"hourly_rate,omitempty"`
	Department   *string    `json:"department,omitempty"`
	Municipality *string    `json:"municipality,omitempty"`
	SkillIds     []int      `json:"skill_ids,omitempty"`
	AvatarURL    *string    `json:"profile_picture_url,omitempty"`
	IsAvailable  bool       `json:"is_available"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Principal - аутентифицированный субъект запроса, передается в каждый вызов policy gate
type Principal struct {
	UserID int
	Role   UserRole
}

type UpdateUserRequest struct {
	Name         string   `json:"name"`
	Bio          *string  `json:"bio"`
	HourlyRate   *float64 `json:"hourly_rate"`
	Department   *string  `json:"department"`
	Municipality *string  `json:"municipality"`
	SkillIds     []int    `json:"skill_ids"`
	IsAvailable  *bool    `json:"is_available"` // только админ
}

// Регистрация
type RegisterRequest struct {
	Name         string   `json:"name" validate:"required, min=1, max=255"`
	Email        string   `json:"email" validate:"required, email"`
	Password     string   `json:"password" validate:"required, min=8, max=255"`
	Role         UserRole `json:"user_type" validate:"oneof=client tasker"`
	Bio          *string  `json:"bio"`
	HourlyRate   *float64 `json:"hourly_rate"`
	Department   *string  `json:"department"`
	Municipality *string  `json:"municipality"`
	SkillIds     []int    `json:"skill_ids"`
}

// Логин
type LoginRequest struct {
	Email    string `json:"email" validate:"required, email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh Token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// JWT Claims
type JWTClaims struct {
	UserID int      `json:"user_id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

// Statistics - агрегаты для админ-дашборда, пересчитываются на чтении
type Statistics struct {
	TotalUsers    int `json:"total_users"`
	TotalClients  int `json:"total_clients"`
	TotalTaskers  int `json:"total_taskers"`
	TotalTasks    int `json:"total_tasks"`
	TotalBookings int `json:"total_bookings"`
}
