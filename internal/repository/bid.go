package repository

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bidColumns = `id, task_id, tasker_id, bid_amount, message, status, created_at, updated_at`

type BidRepository struct {
	db *pgxpool.Pool
}

func NewBidRepository(db *pgxpool.Pool) *BidRepository {
	return &BidRepository{
		db: db,
	}
}

func scanBid(row pgx.Row) (*entity.Bid, error) {
	var bid entity.Bid
	err := row.Scan(
		&bid.ID,
		&bid.TaskID,
		&bid.TaskerID,
		&bid.Amount,
		&bid.Message,
		&bid.Status,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// Create создает pending-ставку. Строка задачи блокируется FOR UPDATE, чтобы
// ставка, гонящаяся с принятием другой ставки, детерминированно видела
// пост-переходный статус задачи.
func (r *BidRepository) Create(ctx context.Context, taskerID int, req *entity.SubmitBidRequest) (*entity.Bid, error) {
	var bid *entity.Bid

	err := withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// 1. Блокируем задачу и проверяем статус
		var status entity.TaskStatus
		err = tx.QueryRow(ctx, `SELECT status FROM task WHERE id = $1 FOR UPDATE`, req.TaskID).Scan(&status)
		if err != nil {
			if err == pgx.ErrNoRows {
				return entity.ErrTaskNotFound
			}
			return err
		}
		if status != entity.StatusOpen {
			return entity.ErrInvalidState
		}

		// 2. Не больше одной pending-ставки на пару (задача, таскер)
		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM bid WHERE task_id = $1 AND tasker_id = $2 AND status = 'pending')`,
			req.TaskID, taskerID,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			return entity.ErrDuplicateBid
		}

		// 3. Создаем ставку
		bid, err = scanBid(tx.QueryRow(ctx, `
			INSERT INTO bid (task_id, tasker_id, bid_amount, message, status)
			VALUES ($1, $2, $3, $4, 'pending')
			RETURNING `+bidColumns,
			req.TaskID, taskerID, req.Amount, req.Message,
		))
		if err != nil {
			return err
		}

		// 4. Видимый счетчик ставок на задаче
		_, err = tx.Exec(ctx, `UPDATE task SET bid_count = bid_count + 1 WHERE id = $1`, req.TaskID)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return bid, nil
}

func (r *BidRepository) GetByBidId(ctx context.Context, bidId int) (*entity.Bid, error) {

	query := `SELECT ` + bidColumns + ` FROM bid WHERE id = $1`

	var bid *entity.Bid
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		bid, scanErr = scanBid(r.db.QueryRow(ctx, query, bidId))
		return scanErr
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return bid, nil
}

// UpdateStatus - compare-and-set для одиночных переходов (reject, withdraw)
func (r *BidRepository) UpdateStatus(ctx context.Context, id int, from, to entity.BidStatus) (*entity.Bid, error) {

	query := `
	UPDATE bid
	SET status = $3, updated_at = CURRENT_TIMESTAMP
	WHERE id = $1 AND status = $2
	RETURNING ` + bidColumns

	var bid *entity.Bid
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		bid, scanErr = scanBid(r.db.QueryRow(ctx, query, id, from, to))
		return scanErr
	})
	if err == nil {
		return bid, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	current, err := r.GetByBidId(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, entity.ErrBidNotFound
	}
	return nil, entity.ErrInvalidState
}

// Accept атомарно: ставка -> accepted, остальные pending-ставки задачи -> rejected,
// задача -> assigned, создается букинг с agreed_price = bid_amount. Все или ничего,
// иначе возможны задача с двумя принятыми ставками или принятая ставка без букинга.
func (r *BidRepository) Accept(ctx context.Context, bidId int) (*entity.AcceptBidResult, error) {
	var result *entity.AcceptBidResult

	err := withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// 1. Находим ставку, чтобы узнать задачу
		var taskID int
		err = tx.QueryRow(ctx, `SELECT task_id FROM bid WHERE id = $1`, bidId).Scan(&taskID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return entity.ErrBidNotFound
			}
			return err
		}

		// 2. Блокируем задачу: два конкурентных Accept сериализуются здесь
		task, err := scanTask(tx.QueryRow(ctx,
			`SELECT `+taskColumns+` FROM task WHERE id = $1 FOR UPDATE`, taskID))
		if err != nil {
			return err
		}
		if task.Status != entity.StatusOpen {
			return entity.ErrInvalidState
		}

		// 3. Перечитываем ставку под блокировкой задачи
		bid, err := scanBid(tx.QueryRow(ctx,
			`SELECT `+bidColumns+` FROM bid WHERE id = $1 FOR UPDATE`, bidId))
		if err != nil {
			return err
		}
		if bid.Status != entity.BidPending {
			return entity.ErrInvalidState
		}

		// 4. Принимаем ставку
		bid, err = scanBid(tx.QueryRow(ctx, `
			UPDATE bid SET status = 'accepted', updated_at = CURRENT_TIMESTAMP
			WHERE id = $1
			RETURNING `+bidColumns, bidId))
		if err != nil {
			return err
		}

		// 5. Отклоняем остальные pending-ставки задачи
		_, err = tx.Exec(ctx, `
			UPDATE bid SET status = 'rejected', updated_at = CURRENT_TIMESTAMP
			WHERE task_id = $1 AND status = 'pending' AND id <> $2`,
			taskID, bidId)
		if err != nil {
			return err
		}

		// 6. Переводим задачу в assigned
		task, err = scanTask(tx.QueryRow(ctx, `
			UPDATE task SET status = 'assigned', updated_at = CURRENT_TIMESTAMP
			WHERE id = $1
			RETURNING `+taskColumns, taskID))
		if err != nil {
			return err
		}

		// 7. Создаем букинг 1:1 с принятой ставкой
		var booking entity.Booking
		err = tx.QueryRow(ctx, `
			INSERT INTO booking (bid_id, task_id, client_id, tasker_id, agreed_price, status)
			VALUES ($1, $2, $3, $4, $5, 'scheduled')
			RETURNING id, bid_id, task_id, client_id, tasker_id, agreed_price, status, start_time, end_time, created_at, updated_at`,
			bidId, taskID, task.ClientID, bid.TaskerID, bid.Amount,
		).Scan(
			&booking.ID,
			&booking.BidID,
			&booking.TaskID,
			&booking.ClientID,
			&booking.TaskerID,
			&booking.AgreedPrice,
			&booking.Status,
			&booking.StartTime,
			&booking.EndTime,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = &entity.AcceptBidResult{Bid: bid, Task: task, Booking: &booking}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *BidRepository) ListByTask(ctx context.Context, taskId int) ([]entity.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE task_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, taskId)
}

// ListPendingByTasker - pending-ставки, поданные таскером
func (r *BidRepository) ListPendingByTasker(ctx context.Context, taskerID int) ([]entity.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE tasker_id = $1 AND status = 'pending' ORDER BY created_at DESC`
	return r.list(ctx, query, taskerID)
}

// ListPendingForClient - pending-ставки на задачи клиента
func (r *BidRepository) ListPendingForClient(ctx context.Context, clientID int) ([]entity.Bid, error) {
	query := `
	SELECT b.id, b.task_id, b.tasker_id, b.bid_amount, b.message, b.status, b.created_at, b.updated_at
	FROM bid b
	JOIN task t ON t.id = b.task_id
	WHERE t.client_id = $1 AND b.status = 'pending'
	ORDER BY b.created_at DESC`
	return r.list(ctx, query, clientID)
}

func (r *BidRepository) list(ctx context.Context, query string, args ...interface{}) ([]entity.Bid, error) {
	var bids []entity.Bid
	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		bids = bids[:0]
		for rows.Next() {
			bid, err := scanBid(rows)
			if err != nil {
				return err
			}
			bids = append(bids, *bid)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return bids, nil
}
