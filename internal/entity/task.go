package entity

import "time"

type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusAssigned   TaskStatus = "assigned"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCanceled   TaskStatus = "canceled"
	StatusDisputed   TaskStatus = "disputed"
)

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusCompleted, StatusCanceled, StatusDisputed:
		return true
	default:
		return false
	}
}

// таблица разрешенных переходов, единственный источник правды для статусов задачи
var taskTransitions = map[TaskStatus][]TaskStatus{
	StatusOpen:       {StatusAssigned, StatusCanceled},
	StatusAssigned:   {StatusInProgress, StatusCanceled},
	StatusInProgress: {StatusCompleted, StatusDisputed},
	StatusDisputed:   {StatusInProgress},
}

func (s TaskStatus) CanTransition(to TaskStatus) bool {
	for _, allowed := range taskTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

type BudgetType string

const (
	BudgetFixed  BudgetType = "fixed"
	BudgetHourly BudgetType = "hourly"
)

type Task struct {
	ID            int        `json:"id"`
	ClientID      int        `json:"client_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CategoryID    int        `json:"category_id"`
	SkillIds      []int      `json:"skill_ids"`
	BudgetType    BudgetType `json:"budget_type"`
	BudgetAmount  float64    `json:"budget_amount"`
	Location      string     `json:"location"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	PreferredDate *string    `json:"preferred_date,omitempty"`
	PreferredTime *string    `json:"preferred_time,omitempty"`
	DeadlineAt    *time.Time `json:"deadline_at,omitempty"`
	Status        TaskStatus `json:"status"`
	BidCount      int        `json:"bid_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TaskWithBids - задача вместе со ставками для детального просмотра
type TaskWithBids struct {
	Task
	Bids []Bid `json:"bids"`
}

// валидация
type CreateTaskRequest struct {
	Title         string     `json:"title" validate:"required, min=1, max=255"`
	Description   string     `json:"description" validate:"required"`
	CategoryID    int        `json:"category_id" validate:"required, min=1"`
	SkillIds      []int      `json:"skill_ids"`
	BudgetType    BudgetType `json:"budget_type" validate:"oneof=fixed hourly"`
	BudgetAmount  float64    `json:"budget_amount" validate:"required, gt=0"`
	Location      string     `json:"location" validate:"required"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	PreferredDate *string    `json:"preferred_date"`
	PreferredTime *string    `json:"preferred_time"`
	DeadlineAt    *time.Time `json:"deadline_at"`
}

// TaskAction - явный запрос перехода через PUT /tasks/{id}/status
type TaskAction string

const (
	TaskActionCancel  TaskAction = "cancel"
	TaskActionDispute TaskAction = "dispute"
	TaskActionResolve TaskAction = "resolve"
)

type UpdateTaskStatusRequest struct {
	Action TaskAction `json:"action" validate:"oneof=cancel dispute resolve"`
}
