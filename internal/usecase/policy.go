package usecase

import (
	"github.com/St1cky1/marketplace-service/internal/entity"
)

type Action string

const (
	ActionCreateTask         Action = "task.create"
	ActionCancelTask         Action = "task.cancel"
	ActionDisputeTask        Action = "task.dispute"
	ActionResolveTask        Action = "task.resolve"
	ActionSubmitBid          Action = "bid.submit"
	ActionWithdrawBid        Action = "bid.withdraw"
	ActionAcceptBid          Action = "bid.accept"
	ActionRejectBid          Action = "bid.reject"
	ActionStartBooking       Action = "booking.start"
	ActionCompleteBooking    Action = "booking.complete"
	ActionCreateReview       Action = "review.create"
	ActionToggleAvailability Action = "user.toggle_availability"
	ActionListUsers          Action = "user.list"
	ActionViewStatistics     Action = "statistics.view"
)

// BidTarget - ставка вместе с ее задачей для проверок владения
type BidTarget struct {
	Bid  *entity.Bid
	Task *entity.Task
}

// PolicyGate - чистая функция авторизации. Каждая мутация в сервисах проходит
// через CanPerform до обращения к хранилищу; роль берется из серверного
// principal, а не из данных клиента.
type PolicyGate struct{}

func NewPolicyGate() *PolicyGate {
	return &PolicyGate{}
}

func (g *PolicyGate) CanPerform(p *entity.Principal, action Action, target any) error {
	if p == nil {
		return entity.ErrForbidden
	}

	switch action {
	case ActionCreateTask:
		if p.Role == entity.RoleClient {
			return nil
		}

	case ActionCancelTask:
		// отменить задачу может только ее клиент
		if task, ok := target.(*entity.Task); ok && p.Role == entity.RoleClient && task.ClientID == p.UserID {
			return nil
		}

	case ActionDisputeTask:
		// спор открывает любая из сторон букинга
		if booking, ok := target.(*entity.Booking); ok && (booking.ClientID == p.UserID || booking.TaskerID == p.UserID) {
			return nil
		}

	case ActionResolveTask:
		if p.Role == entity.RoleAdmin {
			return nil
		}

	case ActionSubmitBid:
		if p.Role == entity.RoleTasker {
			return nil
		}

	case ActionWithdrawBid:
		if bid, ok := target.(*entity.Bid); ok && bid.TaskerID == p.UserID {
			return nil
		}

	case ActionAcceptBid, ActionRejectBid:
		if t, ok := target.(*BidTarget); ok && t.Task.ClientID == p.UserID {
			return nil
		}

	case ActionStartBooking:
		if booking, ok := target.(*entity.Booking); ok && booking.TaskerID == p.UserID {
			return nil
		}

	case ActionCompleteBooking:
		if booking, ok := target.(*entity.Booking); ok && (booking.TaskerID == p.UserID || booking.ClientID == p.UserID) {
			return nil
		}

	case ActionCreateReview:
		if booking, ok := target.(*entity.Booking); ok && (booking.TaskerID == p.UserID || booking.ClientID == p.UserID) {
			return nil
		}

	case ActionToggleAvailability, ActionListUsers, ActionViewStatistics:
		// админ видит агрегаты и управляет доступностью, но не трогает доменные сущности
		if p.Role == entity.RoleAdmin {
			return nil
		}
	}

	return entity.ErrForbidden
}
