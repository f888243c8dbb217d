package usecase

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/repository"
)

type BidEngine struct {
	bidRepo  repository.IBidRepository
	taskRepo repository.ITaskRepository
	policy   *PolicyGate
	audit    AuditPublisher
}

func NewBidEngine(
	bidRepo repository.IBidRepository,
	taskRepo repository.ITaskRepository,
	policy *PolicyGate,
	audit AuditPublisher,
) *BidEngine {
	return &BidEngine{
		bidRepo:  bidRepo,
		taskRepo: taskRepo,
		policy:   policy,
		audit:    audit,
	}
}

// SubmitBid создает pending-ставку на открытую задачу
func (e *BidEngine) SubmitBid(ctx context.Context, p *entity.Principal, req *entity.SubmitBidRequest) (*entity.Bid, error) {
	// 1. Авторизация
	if err := e.policy.CanPerform(p, ActionSubmitBid, nil); err != nil {
		return nil, err
	}

	// 2. Валидация
	if req.TaskID <= 0 {
		return nil, entity.NewValidationError("task_id", "is required")
	}
	if req.Amount <= 0 {
		return nil, entity.NewValidationError("bid_amount", "must be positive")
	}
	if req.Message != nil && len([]rune(*req.Message)) > entity.MaxBidMessageLen {
		return nil, entity.NewValidationError("message", "exceeds 500 characters")
	}

	// 3. Проверяем задачу: только open принимает ставки
	task, err := e.taskRepo.GetByTaskId(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}
	if task.Status != entity.StatusOpen {
		return nil, entity.ErrInvalidState
	}

	// 4. Создаем ставку; статус задачи и уникальность pending-ставки
	// перепроверяются репозиторием под блокировкой
	bid, err := e.bidRepo.Create(ctx, p.UserID, req)
	if err != nil {
		return nil, err
	}

	publishAudit(e.audit, p.UserID, entity.ActionCreate, entity.EntityBid, bid.ID, nil, bidValues(bid))

	return bid, nil
}

// WithdrawBid отзывает pending-ставку. Статус задачи не меняется.
func (e *BidEngine) WithdrawBid(ctx context.Context, p *entity.Principal, bidID int) (*entity.Bid, error) {
	bid, err := e.bidRepo.GetByBidId(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, entity.ErrBidNotFound
	}

	if err := e.policy.CanPerform(p, ActionWithdrawBid, bid); err != nil {
		return nil, err
	}

	if bid.Status != entity.BidPending {
		return nil, entity.ErrInvalidState
	}

	updated, err := e.bidRepo.UpdateStatus(ctx, bidID, entity.BidPending, entity.BidWithdrawn)
	if err != nil {
		return nil, err
	}

	publishAudit(e.audit, p.UserID, entity.ActionTransition, entity.EntityBid, bidID, bidValues(bid), bidValues(updated))

	return updated, nil
}

// AcceptBid принимает ставку: сама ставка -> accepted, остальные pending-ставки
// задачи -> rejected, задача -> assigned, создается букинг. Все в одной транзакции.
func (e *BidEngine) AcceptBid(ctx context.Context, p *entity.Principal, bidID int) (*entity.AcceptBidResult, error) {
	bid, err := e.bidRepo.GetByBidId(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, entity.ErrBidNotFound
	}

	task, err := e.taskRepo.GetByTaskId(ctx, bid.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	if err := e.policy.CanPerform(p, ActionAcceptBid, &BidTarget{Bid: bid, Task: task}); err != nil {
		return nil, err
	}

	if bid.Status != entity.BidPending || task.Status != entity.StatusOpen {
		return nil, entity.ErrInvalidState
	}

	// условия перепроверяются внутри транзакции: конкурентный Accept
	// на ту же задачу получит ErrInvalidState
	result, err := e.bidRepo.Accept(ctx, bidID)
	if err != nil {
		return nil, err
	}

	publishAudit(e.audit, p.UserID, entity.ActionTransition, entity.EntityBid, bidID, bidValues(bid), bidValues(result.Bid))
	publishAudit(e.audit, p.UserID, entity.ActionTransition, entity.EntityTask, task.ID, taskValues(task), taskValues(result.Task))
	publishAudit(e.audit, p.UserID, entity.ActionCreate, entity.EntityBooking, result.Booking.ID, nil, bookingValues(result.Booking))

	return result, nil
}

// RejectBid отклоняет одиночную ставку, задача остается open
func (e *BidEngine) RejectBid(ctx context.Context, p *entity.Principal, bidID int) (*entity.Bid, error) {
	bid, err := e.bidRepo.GetByBidId(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, entity.ErrBidNotFound
	}

	task, err := e.taskRepo.GetByTaskId(ctx, bid.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	if err := e.policy.CanPerform(p, ActionRejectBid, &BidTarget{Bid: bid, Task: task}); err != nil {
		return nil, err
	}

	if bid.Status != entity.BidPending {
		return nil, entity.ErrInvalidState
	}

	updated, err := e.bidRepo.UpdateStatus(ctx, bidID, entity.BidPending, entity.BidRejected)
	if err != nil {
		return nil, err
	}

	publishAudit(e.audit, p.UserID, entity.ActionTransition, entity.EntityBid, bidID, bidValues(bid), bidValues(updated))

	return updated, nil
}

// ListPending - pending-ставки: для клиента по его задачам, для таскера его собственные
func (e *BidEngine) ListPending(ctx context.Context, p *entity.Principal) ([]entity.Bid, error) {
	if p == nil {
		return nil, entity.ErrForbidden
	}

	switch p.Role {
	case entity.RoleClient:
		return e.bidRepo.ListPendingForClient(ctx, p.UserID)
	case entity.RoleTasker:
		return e.bidRepo.ListPendingByTasker(ctx, p.UserID)
	default:
		return nil, entity.ErrForbidden
	}
}
