package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/St1cky1/marketplace-service/internal/entity"
)

func completedBookingRepo() *MockBookingRepository {
	return &MockBookingRepository{
		GetByBookingIdFunc: func(ctx context.Context, bookingId int) (*entity.Booking, error) {
			return &entity.Booking{ID: 7, TaskID: 10, ClientID: 1, TaskerID: 2, Status: entity.BookingCompleted}, nil
		},
	}
}

func TestCreateReviewSuccess(t *testing.T) {
	ctx := context.Background()

	mockReviewRepo := &MockReviewRepository{
		CreateFunc: func(ctx context.Context, review *entity.Review) (*entity.Review, error) {
			review.ID = 1
			return review, nil
		},
	}

	service := NewReviewService(mockReviewRepo, completedBookingRepo(), NewPolicyGate())

	review, err := service.CreateReview(ctx, clientPrincipal(1), &entity.CreateReviewRequest{
		BookingID: 7,
		Rating:    5,
		Comment:   "Отличная работа",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if review.ReviewerID != 1 {
		t.Errorf("Expected reviewer 1, got %d", review.ReviewerID)
	}
	// получатель отзыва - вторая сторона букинга
	if review.RevieweeID != 2 {
		t.Errorf("Expected reviewee 2, got %d", review.RevieweeID)
	}
}

func TestCreateReviewRevieweeIsOtherParty(t *testing.T) {
	ctx := context.Background()

	mockReviewRepo := &MockReviewRepository{
		CreateFunc: func(ctx context.Context, review *entity.Review) (*entity.Review, error) {
			return review, nil
		},
	}

	service := NewReviewService(mockReviewRepo, completedBookingRepo(), NewPolicyGate())

	// отзыв от таскера достается клиенту
	review, err := service.CreateReview(ctx, taskerPrincipal(2), &entity.CreateReviewRequest{
		BookingID: 7,
		Rating:    4,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if review.RevieweeID != 1 {
		t.Errorf("Expected reviewee 1, got %d", review.RevieweeID)
	}
}

func TestCreateReviewBookingNotCompleted(t *testing.T) {
	ctx := context.Background()

	mockBookingRepo := &MockBookingRepository{
		GetByBookingIdFunc: func(ctx context.Context, bookingId int) (*entity.Booking, error) {
			return &entity.Booking{ID: 7, ClientID: 1, TaskerID: 2, Status: entity.BookingInProgress}, nil
		},
	}

	service := NewReviewService(&MockReviewRepository{}, mockBookingRepo, NewPolicyGate())

	_, err := service.CreateReview(ctx, clientPrincipal(1), &entity.CreateReviewRequest{BookingID: 7, Rating: 5})
	if !errors.Is(err, entity.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got %v", err)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	ctx := context.Background()

	mockReviewRepo := &MockReviewRepository{
		GetByBookingAndReviewerFunc: func(ctx context.Context, bookingId, reviewerID int) (*entity.Review, error) {
			return &entity.Review{ID: 1, BookingID: bookingId, ReviewerID: reviewerID}, nil
		},
	}

	service := NewReviewService(mockReviewRepo, completedBookingRepo(), NewPolicyGate())

	_, err := service.CreateReview(ctx, clientPrincipal(1), &entity.CreateReviewRequest{BookingID: 7, Rating: 5})
	if !errors.Is(err, entity.ErrDuplicateReview) {
		t.Errorf("Expected ErrDuplicateReview, got %v", err)
	}
}

func TestCreateReviewByOutsider(t *testing.T) {
	ctx := context.Background()

	service := NewReviewService(&MockReviewRepository{}, completedBookingRepo(), NewPolicyGate())

	_, err := service.CreateReview(ctx, clientPrincipal(99), &entity.CreateReviewRequest{BookingID: 7, Rating: 5})
	if !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	ctx := context.Background()

	service := NewReviewService(&MockReviewRepository{}, completedBookingRepo(), NewPolicyGate())

	cases := []struct {
		name string
		req  *entity.CreateReviewRequest
	}{
		{"rating zero", &entity.CreateReviewRequest{BookingID: 7, Rating: 0}},
		{"rating six", &entity.CreateReviewRequest{BookingID: 7, Rating: 6}},
		{"comment too long", &entity.CreateReviewRequest{BookingID: 7, Rating: 5, Comment: strings.Repeat("x", 2001)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateReview(ctx, clientPrincipal(1), tc.req)
			var validationErr *entity.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}
}
