package repository

import (
	"context"
	"strconv"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password_hash, role, bio, hourly_rate, department, municipality,
	skill_ids, avatar_url, is_available, is_active, last_login, created_at, updated_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Bio,
		&user.HourlyRate,
		&user.Department,
		&user.Municipality,
		&user.SkillIds,
		&user.AvatarURL,
		&user.IsAvailable,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// создаем пользователя при регистрации
func (r *UserRepository) CreateWithAuth(ctx context.Context, req *entity.RegisterRequest, passwordHash string) (*entity.User, error) {

	query := `
	INSERT INTO "user" (name, email, password_hash, role, bio, hourly_rate, department, municipality, skill_ids)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + userColumns

	var user *entity.User
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		user, scanErr = scanUser(r.db.QueryRow(ctx, query,
			req.Name,
			req.Email,
			passwordHash,
			req.Role,
			req.Bio,
			req.HourlyRate,
			req.Department,
			req.Municipality,
			req.SkillIds,
		))
		return scanErr
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// получаем данные по id
func (r *UserRepository) GetById(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id = $1`

	var user *entity.User
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		user, scanErr = scanUser(r.db.QueryRow(ctx, query, id))
		return scanErr
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE email = $1`

	var user *entity.User
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		user, scanErr = scanUser(r.db.QueryRow(ctx, query, email))
		return scanErr
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// Update - обновляем пользователя, динамически строим SET часть запроса
func (r *UserRepository) Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error) {
	setClause := ""
	args := []interface{}{}
	argIndex := 1

	for field, value := range updates {
		if field == "updated_at" {
			continue // не обновляем вручную
		}
		if argIndex > 1 {
			setClause += ", "
		}
		setClause += field + " = $" + strconv.Itoa(argIndex)
		args = append(args, value)
		argIndex++
	}

	if argIndex > 1 {
		setClause += ", updated_at = CURRENT_TIMESTAMP"
	}

	query := `
	UPDATE "user"
	SET ` + setClause + `
	WHERE id = $` + strconv.Itoa(argIndex) + `
	RETURNING ` + userColumns
	args = append(args, id)

	var user *entity.User
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		user, scanErr = scanUser(r.db.QueryRow(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// List - получаем всех пользователей, опционально с поиском по имени или email
func (r *UserRepository) List(ctx context.Context, search string) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user"`
	args := []interface{}{}

	if search != "" {
		query += ` WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY created_at DESC`

	var users []entity.User
	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		users = users[:0]
		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return err
			}
			users = append(users, *user)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetStatistics - агрегаты для админ-дашборда одним запросом
func (r *UserRepository) GetStatistics(ctx context.Context) (*entity.Statistics, error) {

	query := `
	SELECT
		(SELECT COUNT(*) FROM "user"),
		(SELECT COUNT(*) FROM "user" WHERE role = 'client'),
		(SELECT COUNT(*) FROM "user" WHERE role = 'tasker'),
		(SELECT COUNT(*) FROM task),
		(SELECT COUNT(*) FROM booking)`

	var stats entity.Statistics
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRow(ctx, query).Scan(
			&stats.TotalUsers,
			&stats.TotalClients,
			&stats.TotalTaskers,
			&stats.TotalTasks,
			&stats.TotalBookings,
		)
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
