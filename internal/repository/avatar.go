package repository

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvatarRepository struct {
	db *pgxpool.Pool
}

func NewAvatarRepository(db *pgxpool.Pool) *AvatarRepository {
	return &AvatarRepository{
		db: db,
	}
}

// Save - сохраняем метаданные аватарки, по одной на пользователя
func (r *AvatarRepository) Save(ctx context.Context, avatar *entity.Avatar) (*entity.Avatar, error) {

	query := `
	INSERT INTO avatar (user_id, file_path, file_size, content_type)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id) DO UPDATE
	SET file_path = EXCLUDED.file_path,
	    file_size = EXCLUDED.file_size,
	    content_type = EXCLUDED.content_type,
	    updated_at = CURRENT_TIMESTAMP
	RETURNING id, user_id, file_path, file_size, content_type, created_at, updated_at
	`

	var saved entity.Avatar
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRow(ctx, query,
			avatar.UserID,
			avatar.FilePath,
			avatar.FileSize,
			avatar.ContentType,
		).Scan(
			&saved.ID,
			&saved.UserID,
			&saved.FilePath,
			&saved.FileSize,
			&saved.ContentType,
			&saved.CreatedAt,
			&saved.UpdatedAt,
		)
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *AvatarRepository) GetByUserId(ctx context.Context, userId int) (*entity.Avatar, error) {

	query := `
	SELECT id, user_id, file_path, file_size, content_type, created_at, updated_at
	FROM avatar
	WHERE user_id = $1
	`

	var avatar entity.Avatar
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRow(ctx, query, userId).Scan(
			&avatar.ID,
			&avatar.UserID,
			&avatar.FilePath,
			&avatar.FileSize,
			&avatar.ContentType,
			&avatar.CreatedAt,
			&avatar.UpdatedAt,
		)
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &avatar, nil
}

func (r *AvatarRepository) DeleteByUserId(ctx context.Context, userId int) error {
	query := `DELETE FROM avatar WHERE user_id = $1`

	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, userId)
		return err
	})
}
