package repository

import (
	"context"
	"time"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RefreshTokenRepository struct {
	db *pgxpool.Pool
}

func NewRefreshTokenRepository(db *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		db: db,
	}
}

// Save - сохраняем refresh token
func (r *RefreshTokenRepository) Save(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	query := `
	INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
	VALUES ($1, $2, $3)
	`

	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, userID, tokenHash, expiresAt)
		return err
	})
}

// GetByHash - получаем токен по хешу
func (r *RefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	query := `
	SELECT id, user_id, token_hash, expires_at, revoked, created_at
	FROM refresh_tokens
	WHERE token_hash = $1 AND revoked = false AND expires_at > NOW()
	`

	var token entity.RefreshToken
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRow(ctx, query, tokenHash).Scan(
			&token.ID,
			&token.UserID,
			&token.TokenHash,
			&token.ExpiresAt,
			&token.Revoked,
			&token.CreatedAt,
		)
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &token, nil
}

// Revoke - откатываем конкретный токен
func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	query := `
	UPDATE refresh_tokens
	SET revoked = true
	WHERE token_hash = $1
	`

	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, tokenHash)
		return err
	})
}

// RevokeAll - откатываем все токены пользователя
func (r *RefreshTokenRepository) RevokeAll(ctx context.Context, userID int) error {
	query := `
	UPDATE refresh_tokens
	SET revoked = true
	WHERE user_id = $1
	`

	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, userID)
		return err
	})
}
