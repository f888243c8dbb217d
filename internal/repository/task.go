package repository

import (
	"context"
	"strconv"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, client_id, title, description, category_id, skill_ids, budget_type, budget_amount,
	location, latitude, longitude, preferred_date, preferred_time, deadline_at, status, bid_count, created_at, updated_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var task entity.Task
	err := row.Scan(
		&task.ID,
		&task.ClientID,
		&task.Title,
		&task.Description,
		&task.CategoryID,
		&task.SkillIds,
		&task.BudgetType,
		&task.BudgetAmount,
		&task.Location,
		&task.Latitude,
		&task.Longitude,
		&task.PreferredDate,
		&task.PreferredTime,
		&task.DeadlineAt,
		&task.Status,
		&task.BidCount,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, clientID int, req *entity.CreateTaskRequest) (*entity.Task, error) {

	query := `
	INSERT INTO task (client_id, title, description, category_id, skill_ids, budget_type, budget_amount,
		location, latitude, longitude, preferred_date, preferred_time, deadline_at, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'open')
	RETURNING ` + taskColumns

	var task *entity.Task
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		task, scanErr = scanTask(r.db.QueryRow(ctx, query,
			clientID,
			req.Title,
			req.Description,
			req.CategoryID,
			req.SkillIds,
			req.BudgetType,
			req.BudgetAmount,
			req.Location,
			req.Latitude,
			req.Longitude,
			req.PreferredDate,
			req.PreferredTime,
			req.DeadlineAt,
		))
		return scanErr
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error) {

	query := `SELECT ` + taskColumns + ` FROM task WHERE id = $1`

	var task *entity.Task
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		task, scanErr = scanTask(r.db.QueryRow(ctx, query, taskId))
		return scanErr
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return task, nil
}

// GetWithBids - задача вместе со ставками для детального просмотра
func (r *TaskRepository) GetWithBids(ctx context.Context, taskId int) (*entity.TaskWithBids, error) {
	task, err := r.GetByTaskId(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	query := `
	SELECT id, task_id, tasker_id, bid_amount, message, status, created_at, updated_at
	FROM bid
	WHERE task_id = $1
	ORDER BY created_at DESC`

	var bids []entity.Bid
	err = withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, taskId)
		if err != nil {
			return err
		}
		defer rows.Close()

		bids = bids[:0]
		for rows.Next() {
			var bid entity.Bid
			if err := rows.Scan(
				&bid.ID,
				&bid.TaskID,
				&bid.TaskerID,
				&bid.Amount,
				&bid.Message,
				&bid.Status,
				&bid.CreatedAt,
				&bid.UpdatedAt,
			); err != nil {
				return err
			}
			bids = append(bids, bid)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return &entity.TaskWithBids{Task: *task, Bids: bids}, nil
}

// UpdateStatus - compare-and-set переход статуса. Если статус уже не from,
// возвращает InvalidTransitionError с актуальным состоянием.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int, from, to entity.TaskStatus) (*entity.Task, error) {

	query := `
	UPDATE task
	SET status = $3, updated_at = CURRENT_TIMESTAMP
	WHERE id = $1 AND status = $2
	RETURNING ` + taskColumns

	var task *entity.Task
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		task, scanErr = scanTask(r.db.QueryRow(ctx, query, id, from, to))
		return scanErr
	})
	if err == nil {
		return task, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	// строка не изменилась: либо задачи нет, либо статус уже другой
	current, err := r.GetByTaskId(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, entity.ErrTaskNotFound
	}
	return nil, &entity.InvalidTransitionError{Entity: "task", From: string(current.Status), To: string(to)}
}

// List - список задач с фильтрацией
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.ClientID > 0 {
		query += " AND client_id = $" + strconv.Itoa(argIndex)
		args = append(args, filter.ClientID)
		argIndex++
	}
	if filter.Status != "" {
		query += " AND status = $" + strconv.Itoa(argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Category > 0 {
		query += " AND category_id = $" + strconv.Itoa(argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	var tasks []entity.Task
	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		tasks = tasks[:0]
		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				return err
			}
			tasks = append(tasks, *task)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}
