package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/infrastructure/client"
	"github.com/St1cky1/marketplace-service/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

const seenCapacity = 1000

type AuditWorker struct {
	rabbitMQURL string
	auditRepo   repository.IAuditRepository

	// Дедупликация по MessageID при повторной доставке
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

func NewAuditWorker(rabbitMQURL string, auditRepo repository.IAuditRepository) *AuditWorker {
	return &AuditWorker{
		rabbitMQURL: rabbitMQURL,
		auditRepo:   auditRepo,
		seen:        make(map[string]struct{}),
	}
}

func (w *AuditWorker) Start(ctx context.Context) {
	// Создаем отдельное соединение и канал для consumer'а
	conn, err := amqp.Dial(w.rabbitMQURL)
	if err != nil {
		log.Printf("❌ Ошибка подключения к RabbitMQ для воркера: %v", err)
		return
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		log.Printf("❌ Ошибка создания канала для воркера: %v", err)
		return
	}
	defer channel.Close()

	// Убеждаемся, что очередь существует
	_, err = channel.QueueDeclare(
		client.AuditQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		log.Printf("❌ Ошибка объявления очереди: %v", err)
		return
	}

	// Создаем consumer для очереди
	msgs, err := channel.Consume(
		client.AuditQueueName, // queue
		"audit_worker",        // consumer tag (уникальный идентификатор)
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		log.Printf("❌ Ошибка создания consumer: %v", err)
		return
	}

	fmt.Println("✅ Audit Worker запущен. Ожидаем сообщения...")

	// Обрабатываем сообщения
	for {
		select {
		case <-ctx.Done():
			fmt.Println("🛑 Audit Worker остановлен")
			return
		case msg, ok := <-msgs:
			if !ok {
				fmt.Println("📨 Канал сообщений закрыт")
				return
			}
			w.processMessage(msg)
		}
	}
}

func (w *AuditWorker) processMessage(msg amqp.Delivery) {
	ctx := context.Background()

	// 1. Парсим сообщение
	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		log.Printf("❌ Ошибка парсинга сообщения: %v", err)
		msg.Nack(false, false) // Не возвращаем в очередь
		return
	}

	// 2. Отбрасываем уже обработанные redelivery
	if w.alreadySeen(auditMsg.MessageID) {
		msg.Ack(false)
		return
	}

	// 3. Конвертируем в запись аудита
	record, err := w.convertToRecord(&auditMsg)
	if err != nil {
		log.Printf("❌ Ошибка конвертации: %v", err)
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	// 4. Сохраняем в БД
	if err := w.auditRepo.Create(ctx, record); err != nil {
		log.Printf("❌ Ошибка сохранения аудита: %v", err)
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	// 5. Подтверждаем обработку
	w.remember(auditMsg.MessageID)
	msg.Ack(false)
	log.Printf("✅ Аудит сохранен: %s %s ID=%d", record.Action, record.EntityType, record.EntityID)
}

func (w *AuditWorker) convertToRecord(msg *entity.AuditMessage) (*entity.AuditRecord, error) {
	// Конвертируем map[string]any в JSON строки
	var oldValuesJSON, newValuesJSON *string

	if msg.OldValues != nil {
		oldJSON, err := json.Marshal(msg.OldValues)
		if err != nil {
			return nil, err
		}
		oldStr := string(oldJSON)
		oldValuesJSON = &oldStr
	}

	if msg.NewValues != nil {
		newJSON, err := json.Marshal(msg.NewValues)
		if err != nil {
			return nil, err
		}
		newStr := string(newJSON)
		newValuesJSON = &newStr
	}

	return &entity.AuditRecord{
		UserID:     msg.UserID,
		Action:     msg.Action,
		EntityType: msg.EntityType,
		EntityID:   msg.EntityID,
		OldValues:  oldValuesJSON,
		NewValues:  newValuesJSON,
		ChangedAt:  msg.Timestamp,
	}, nil
}

func (w *AuditWorker) alreadySeen(messageID string) bool {
	if messageID == "" {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.seen[messageID]
	return ok
}

func (w *AuditWorker) remember(messageID string) {
	if messageID == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.order) >= seenCapacity {
		delete(w.seen, w.order[0])
		w.order = w.order[1:]
	}
	w.seen[messageID] = struct{}{}
	w.order = append(w.order, messageID)
}
