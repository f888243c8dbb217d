package repository

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewColumns = `id, booking_id, reviewer_id, reviewee_id, rating, comment, created_at`

type ReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		db: db,
	}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.BookingID,
		&review.ReviewerID,
		&review.RevieweeID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) (*entity.Review, error) {

	query := `
	INSERT INTO review (booking_id, reviewer_id, reviewee_id, rating, comment)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + reviewColumns

	var created *entity.Review
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		created, scanErr = scanReview(r.db.QueryRow(ctx, query,
			review.BookingID,
			review.ReviewerID,
			review.RevieweeID,
			review.Rating,
			review.Comment,
		))
		return scanErr
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *ReviewRepository) GetByBookingAndReviewer(ctx context.Context, bookingId, reviewerID int) (*entity.Review, error) {

	query := `SELECT ` + reviewColumns + ` FROM review WHERE booking_id = $1 AND reviewer_id = $2`

	var review *entity.Review
	err := withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		review, scanErr = scanReview(r.db.QueryRow(ctx, query, bookingId, reviewerID))
		return scanErr
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return review, nil
}

func (r *ReviewRepository) ListByReviewee(ctx context.Context, revieweeID int) ([]entity.Review, error) {

	query := `SELECT ` + reviewColumns + ` FROM review WHERE reviewee_id = $1 ORDER BY created_at DESC`

	var reviews []entity.Review
	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, revieweeID)
		if err != nil {
			return err
		}
		defer rows.Close()

		reviews = reviews[:0]
		for rows.Next() {
			review, err := scanReview(rows)
			if err != nil {
				return err
			}
			reviews = append(reviews, *review)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}
