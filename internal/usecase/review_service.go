package usecase

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/repository"
)

type ReviewService struct {
	reviewRepo  repository.IReviewRepository
	bookingRepo repository.IBookingRepository
	policy      *PolicyGate
}

func NewReviewService(
	reviewRepo repository.IReviewRepository,
	bookingRepo repository.IBookingRepository,
	policy *PolicyGate,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		policy:      policy,
	}
}

// CreateReview - отзыв по завершенному букингу, ровно один от каждой стороны
func (s *ReviewService) CreateReview(ctx context.Context, p *entity.Principal, req *entity.CreateReviewRequest) (*entity.Review, error) {
	// 1. Валидация
	if req.Rating < 1 || req.Rating > 5 {
		return nil, entity.NewValidationError("rating", "must be within [1, 5]")
	}
	if len([]rune(req.Comment)) > 2000 {
		return nil, entity.NewValidationError("comment", "exceeds 2000 characters")
	}

	// 2. Букинг должен существовать и быть завершен
	booking, err := s.bookingRepo.GetByBookingId(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	if err := s.policy.CanPerform(p, ActionCreateReview, booking); err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingCompleted {
		return nil, entity.ErrInvalidState
	}

	// 3. Не больше одного отзыва от стороны
	existing, err := s.reviewRepo.GetByBookingAndReviewer(ctx, req.BookingID, p.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrDuplicateReview
	}

	// 4. Получатель отзыва - вторая сторона букинга
	revieweeID := booking.ClientID
	if p.UserID == booking.ClientID {
		revieweeID = booking.TaskerID
	}

	review := &entity.Review{
		BookingID:  req.BookingID,
		ReviewerID: p.UserID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	return s.reviewRepo.Create(ctx, review)
}

// ListForUser - отзывы, полученные пользователем
func (s *ReviewService) ListForUser(ctx context.Context, userID int) ([]entity.Review, error) {
	return s.reviewRepo.ListByReviewee(ctx, userID)
}
