package entity

import "time"

type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

func ValidBidStatus(s BidStatus) bool {
	switch s {
	case BidPending, BidAccepted, BidRejected, BidWithdrawn:
		return true
	default:
		return false
	}
}

// MaxBidMessageLen - лимит длины сообщения ставки
const MaxBidMessageLen = 500

type Bid struct {
	ID        int       `json:"id"`
	TaskID    int       `json:"task_id"`
	TaskerID  int       `json:"tasker_id"`
	Amount    float64   `json:"bid_amount"`
	Message   *string   `json:"message,omitempty"`
	Status    BidStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// валидация
type SubmitBidRequest struct {
	TaskID  int     `json:"task_id" validate:"required, min=1"`
	Amount  float64 `json:"bid_amount" validate:"required, gt=0"`
	Message *string `json:"message" validate:"max=500"`
}

// AcceptBidResult - результат атомарного принятия ставки
type AcceptBidResult struct {
	Bid     *Bid     `json:"bid"`
	Task    *Task    `json:"task"`
	Booking *Booking `json:"booking"`
}
