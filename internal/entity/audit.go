package entity

import (
	"time"
)

type ActionType string

const (
	ActionCreate     ActionType = "Create"
	ActionUpdate     ActionType = "Update"
	ActionTransition ActionType = "Transition"
)

type EntityType string

const (
	EntityTask    EntityType = "task"
	EntityBid     EntityType = "bid"
	EntityBooking EntityType = "booking"
	EntityUser    EntityType = "user"
)

type AuditRecord struct {
	ID         int        `json:"id"`
	UserID     int        `json:"user_id"`
	Action     ActionType `json:"action"`
	EntityType EntityType `json:"entity_type"`
	EntityID   int        `json:"entity_id"`
	OldValues  *string    `json:"old_values"`
	NewValues  *string    `json:"new_values"`
	ChangedAt  time.Time  `json:"changed_at"`
}

// AuditMessage - сообщение в очередь аудита, MessageID для дедупликации на consumer'е
type AuditMessage struct {
	MessageID  string         `json:"message_id"`
	UserID     int            `json:"user_id"`
	Action     ActionType     `json:"action"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   int            `json:"entity_id"`
	OldValues  map[string]any `json:"old_values,omitempty"`
	NewValues  map[string]any `json:"new_values,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
