package usecase

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/repository"
)

type BookingService struct {
	bookingRepo repository.IBookingRepository
	policy      *PolicyGate
	audit       AuditPublisher
}

func NewBookingService(
	bookingRepo repository.IBookingRepository,
	policy *PolicyGate,
	audit AuditPublisher,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		policy:      policy,
		audit:       audit,
	}
}

// Start - таскер начинает работу: букинг scheduled -> in_progress,
// задача assigned -> in_progress, атомарно
func (s *BookingService) Start(ctx context.Context, p *entity.Principal, bookingID int) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByBookingId(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	if err := s.policy.CanPerform(p, ActionStartBooking, booking); err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingScheduled {
		return nil, &entity.InvalidTransitionError{
			Entity: "booking",
			From:   string(booking.Status),
			To:     string(entity.BookingInProgress),
		}
	}

	updated, err := s.bookingRepo.Start(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	publishAudit(s.audit, p.UserID, entity.ActionTransition, entity.EntityBooking, bookingID, bookingValues(booking), bookingValues(updated))

	return updated, nil
}

// Complete - любая из сторон завершает работу: букинг и задача -> completed,
// атомарно. Открывает возможность оставить отзыв обеим сторонам.
func (s *BookingService) Complete(ctx context.Context, p *entity.Principal, bookingID int) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByBookingId(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	if err := s.policy.CanPerform(p, ActionCompleteBooking, booking); err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingInProgress {
		return nil, &entity.InvalidTransitionError{
			Entity: "booking",
			From:   string(booking.Status),
			To:     string(entity.BookingCompleted),
		}
	}

	updated, err := s.bookingRepo.Complete(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	publishAudit(s.audit, p.UserID, entity.ActionTransition, entity.EntityBooking, bookingID, bookingValues(booking), bookingValues(updated))

	return updated, nil
}

// ListActive - незавершенные букинги пользователя
func (s *BookingService) ListActive(ctx context.Context, p *entity.Principal) ([]entity.Booking, error) {
	if p == nil {
		return nil, entity.ErrForbidden
	}
	return s.bookingRepo.ListActiveByUser(ctx, p.UserID)
}
