package repository

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, bid_id, task_id, client_id, tasker_id, agreed_price, status, start_time, end_time, created_at, updated_at`

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{
		db: db,
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
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
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByBookingId(ctx context.Context, bookingId int) (*entity.Booking, error) {

	query := `SELECT ` + bookingColumns + ` FROM booking WHERE id = $1`

	var booking *entity.Booking
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		booking, scanErr = scanBooking(r.db.QueryRow(ctx, query, bookingId))
		return scanErr
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Booking, error) {

	query := `SELECT ` + bookingColumns + ` FROM booking WHERE task_id = $1`

	var booking *entity.Booking
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		booking, scanErr = scanBooking(r.db.QueryRow(ctx, query, taskId))
		return scanErr
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return booking, nil
}

// Start переводит букинг scheduled -> in_progress и его задачу assigned -> in_progress
// в одной транзакции
func (r *BookingRepository) Start(ctx context.Context, bookingId int) (*entity.Booking, error) {
	return r.transition(ctx, bookingId,
		entity.BookingScheduled, entity.BookingInProgress,
		entity.StatusAssigned, entity.StatusInProgress,
		`UPDATE booking SET status = 'in_progress', start_time = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 RETURNING `+bookingColumns)
}

// Complete переводит букинг in_progress -> completed и его задачу in_progress -> completed
// в одной транзакции
func (r *BookingRepository) Complete(ctx context.Context, bookingId int) (*entity.Booking, error) {
	return r.transition(ctx, bookingId,
		entity.BookingInProgress, entity.BookingCompleted,
		entity.StatusInProgress, entity.StatusCompleted,
		`UPDATE booking SET status = 'completed', end_time = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 RETURNING `+bookingColumns)
}

func (r *BookingRepository) transition(
	ctx context.Context,
	bookingId int,
	bookingFrom, bookingTo entity.BookingStatus,
	taskFrom, taskTo entity.TaskStatus,
	updateQuery string,
) (*entity.Booking, error) {
	var booking *entity.Booking

	err := withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// 1. Находим букинг, чтобы узнать задачу
		var taskID int
		err = tx.QueryRow(ctx, `SELECT task_id FROM booking WHERE id = $1`, bookingId).Scan(&taskID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return entity.ErrBookingNotFound
			}
			return err
		}

		// 2. Блокируем сначала задачу, затем букинг - тот же порядок, что и в BidRepository
		var taskStatus entity.TaskStatus
		err = tx.QueryRow(ctx, `SELECT status FROM task WHERE id = $1 FOR UPDATE`, taskID).Scan(&taskStatus)
		if err != nil {
			return err
		}

		current, err := scanBooking(tx.QueryRow(ctx,
			`SELECT `+bookingColumns+` FROM booking WHERE id = $1 FOR UPDATE`, bookingId))
		if err != nil {
			return err
		}
		if current.Status != bookingFrom {
			return &entity.InvalidTransitionError{
				Entity: "booking",
				From:   string(current.Status),
				To:     string(bookingTo),
			}
		}
		if taskStatus != taskFrom {
			return &entity.InvalidTransitionError{
				Entity: "task",
				From:   string(taskStatus),
				To:     string(taskTo),
			}
		}

		// 3. Двигаем букинг и задачу вместе
		booking, err = scanBooking(tx.QueryRow(ctx, updateQuery, bookingId))
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE task SET status = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
			taskID, taskTo)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// ListActiveByUser - незавершенные букинги, где пользователь клиент или таскер
func (r *BookingRepository) ListActiveByUser(ctx context.Context, userID int) ([]entity.Booking, error) {

	query := `
	SELECT ` + bookingColumns + `
	FROM booking
	WHERE (client_id = $1 OR tasker_id = $1) AND status <> 'completed'
	ORDER BY created_at DESC`

	var bookings []entity.Booking
	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		bookings = bookings[:0]
		for rows.Next() {
			booking, err := scanBooking(rows)
			if err != nil {
				return err
			}
			bookings = append(bookings, *booking)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
