package repository

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

func (r *AuditRepository) Create(ctx context.Context, audit *entity.AuditRecord) error {

	query := `
	INSERT INTO audit_log (user_id, action, entity_type, entity_id, old_values, new_values, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			audit.UserID,
			audit.Action,
			audit.EntityType,
			audit.EntityID,
			audit.OldValues,
			audit.NewValues,
			audit.ChangedAt,
		)
		return err
	})
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType entity.EntityType, entityID int) ([]entity.AuditRecord, error) {

	query := `
	SELECT id, user_id, action, entity_type, entity_id, old_values, new_values, changed_at
	FROM audit_log
	WHERE entity_type = $1 AND entity_id = $2
	ORDER BY changed_at DESC`

	var records []entity.AuditRecord
	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, entityType, entityID)
		if err != nil {
			return err
		}
		defer rows.Close()

		records = records[:0]
		for rows.Next() {
			var rec entity.AuditRecord
			if err := rows.Scan(
				&rec.ID,
				&rec.UserID,
				&rec.Action,
				&rec.EntityType,
				&rec.EntityID,
				&rec.OldValues,
				&rec.NewValues,
				&rec.ChangedAt,
			); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
