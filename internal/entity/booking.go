package entity

import "time"

type BookingStatus string

const (
	BookingScheduled  BookingStatus = "scheduled"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingScheduled, BookingInProgress, BookingCompleted:
		return true
	default:
		return false
	}
}

// Booking создается ровно один раз, атомарно с принятием ставки. 1:1 с принятой ставкой.
type Booking struct {
	ID          int           `json:"id"`
	BidID       int           `json:"bid_id"`
	TaskID      int           `json:"task_id"`
	ClientID    int           `json:"client_id"`
	TaskerID    int           `json:"tasker_id"`
	AgreedPrice float64       `json:"agreed_price"`
	Status      BookingStatus `json:"status"`
	StartTime   *time.Time    `json:"start_time,omitempty"`
	EndTime     *time.Time    `json:"end_time,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
