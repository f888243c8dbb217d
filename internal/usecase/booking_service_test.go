package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/St1cky1/marketplace-service/internal/entity"
)

func TestStartBookingByTasker(t *testing.T) {
	ctx := context.Background()

	mockBookingRepo := &MockBookingRepository{
		GetByBookingIdFunc: func(ctx context.Context, bookingId int) (*entity.Booking, error) {
			return &entity.Booking{ID: 7, TaskID: 10, ClientID: 1, TaskerID: 2, Status: entity.BookingScheduled}, nil
		},
		StartFunc: func(ctx context.Context, bookingId int) (*entity.Booking, error) {
			return &entity.Booking{ID: 7, TaskID: 10, ClientID: 1, TaskerID: 2, Status: entity.BookingInProgress}, nil
		},
	}

	service := NewBookingService(mockBookingRepo, NewPolicyGate(), &MockRabbitMQPublisher{})

	booking, err := service.Start(ctx, taskerPrincipal(2), 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if booking.Status != entity.BookingInProgress {
		t.Errorf("Expected in_progress, got %s", booking.Status)
	}
}

func TestStartBookingByClientForbidden(t *testing.T) {
	ctx := context.Background()

	mockBookingRepo := &MockBookingRepository{
		GetByBookingIdFunc: func(ctx context.Context, bookingId int) (*entity.Booking, error) {
			return &entity.Booking{ID: 7, TaskID: 10, ClientID: 1, TaskerID: 2, Status: entity.BookingScheduled}, nil
		},
	}

	service := NewBookingService(mockBookingRepo, NewPolicyGate(), &MockRabbitMQPublisher{})

	// начать работу может только таскер букинга, клиент - нет
	_, err := service.Start(ctx, clientPrincipal(1), 7)
	if !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestCompleteBookingFromScheduled(t *testing.T) {
	ctx := context.Background()

	mockBookingRepo := &MockBookingRepository{
		GetByBookingIdFunc: func(ctx context.Context, bookingId int) (*entity.Booking, error) {
			return &entity.Booking{ID: 7, TaskID: 10, ClientID: 1, TaskerID: 2, Status: entity.BookingScheduled}, nil
		},
	}

	service := NewBookingService(mockBookingRepo, NewPolicyGate(), &MockRabbitMQPublisher{})

	// scheduled нельзя завершить минуя in_progress
	_, err := service.Complete(ctx, taskerPrincipal(2), 7)
	var transitionErr *entity.InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("Expected InvalidTransitionError, got %v", err)
	}
	if transitionErr.From != "scheduled" || transitionErr.To != "completed" {
		t.Errorf("Expected scheduled -> completed in error, got %s -> %s", transitionErr.From, transitionErr.To)
	}
}

func TestCompleteBookingByEitherParty(t *testing.T) {
	ctx := context.Background()

	mockBookingRepo := &MockBookingRepository{
		GetByBookingIdFunc: func(ctx context.Context, bookingId int) (*entity.Booking, error) {
			return &entity.Booking{ID: 7, TaskID: 10, ClientID: 1, TaskerID: 2, Status: entity.BookingInProgress}, nil
		},
		CompleteFunc: func(ctx context.Context, bookingId int) (*entity.Booking, error) {
			return &entity.Booking{ID: 7, TaskID: 10, ClientID: 1, TaskerID: 2, Status: entity.BookingCompleted}, nil
		},
	}

	service := NewBookingService(mockBookingRepo, NewPolicyGate(), &MockRabbitMQPublisher{})

	// завершает клиент
	booking, err := service.Complete(ctx, clientPrincipal(1), 7)
	if err != nil {
		t.Fatalf("Expected no error for client, got %v", err)
	}
	if booking.Status != entity.BookingCompleted {
		t.Errorf("Expected completed, got %s", booking.Status)
	}

	// завершает таскер
	if _, err := service.Complete(ctx, taskerPrincipal(2), 7); err != nil {
		t.Fatalf("Expected no error for tasker, got %v", err)
	}

	// посторонний не может
	if _, err := service.Complete(ctx, clientPrincipal(99), 7); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for outsider, got %v", err)
	}
}

func TestStartBookingNotFound(t *testing.T) {
	ctx := context.Background()

	service := NewBookingService(&MockBookingRepository{}, NewPolicyGate(), &MockRabbitMQPublisher{})

	_, err := service.Start(ctx, taskerPrincipal(2), 999)
	if !errors.Is(err, entity.ErrBookingNotFound) {
		t.Errorf("Expected ErrBookingNotFound, got %v", err)
	}
}
