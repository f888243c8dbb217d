package usecase

import (
	"context"
	"log"
	"time"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/google/uuid"
)

// AuditPublisher интерфейс для публикации аудита в RabbitMQ
type AuditPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

// publishAudit асинхронно отправляет аудит-сообщение; ошибка публикации
// логируется и не влияет на результат доменной операции
func publishAudit(
	publisher AuditPublisher,
	userID int,
	action entity.ActionType,
	entityType entity.EntityType,
	entityID int,
	oldValues map[string]any,
	newValues map[string]any,
) {
	if publisher == nil {
		return
	}

	msg := &entity.AuditMessage{
		MessageID:  uuid.NewString(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Timestamp:  time.Now(),
	}

	go func() {
		if err := publisher.PublishAuditMessage(context.Background(), msg); err != nil {
			log.Printf("❌ Ошибка отправки аудита в RabbitMQ: %v", err)
		}
	}()
}

func taskValues(task *entity.Task) map[string]any {
	if task == nil {
		return nil
	}
	return map[string]any{
		"title":         task.Title,
		"status":        task.Status,
		"client_id":     task.ClientID,
		"budget_amount": task.BudgetAmount,
	}
}

func bidValues(bid *entity.Bid) map[string]any {
	if bid == nil {
		return nil
	}
	return map[string]any{
		"task_id":    bid.TaskID,
		"tasker_id":  bid.TaskerID,
		"bid_amount": bid.Amount,
		"status":     bid.Status,
	}
}

func bookingValues(booking *entity.Booking) map[string]any {
	if booking == nil {
		return nil
	}
	return map[string]any{
		"bid_id":       booking.BidID,
		"task_id":      booking.TaskID,
		"agreed_price": booking.AgreedPrice,
		"status":       booking.Status,
	}
}
