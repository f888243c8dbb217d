package entity

import "time"

// Review - отзыв по завершенному букингу, оценка от 1 до 5
type Review struct {
	ID         int       `json:"id"`
	BookingID  int       `json:"booking_id"`
	ReviewerID int       `json:"reviewer_id"`
	RevieweeID int       `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// валидация
type CreateReviewRequest struct {
	BookingID int    `json:"booking_id" validate:"required, min=1"`
	Rating    int    `json:"rating" validate:"required, min=1, max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}
