package usecase

import (
	"context"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/repository"
)

type TaskService struct {
	taskRepo    repository.ITaskRepository
	bookingRepo repository.IBookingRepository
	userRepo    repository.IUserRepository
	policy      *PolicyGate
	audit       AuditPublisher
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	bookingRepo repository.IBookingRepository,
	userRepo repository.IUserRepository,
	policy *PolicyGate,
	audit AuditPublisher,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		policy:      policy,
		audit:       audit,
	}
}

func validateCreateTask(req *entity.CreateTaskRequest) error {
	if req.Title == "" || len(req.Title) > 255 {
		return entity.NewValidationError("title", "is required, up to 255 characters")
	}
	if req.Description == "" {
		return entity.NewValidationError("description", "is required")
	}
	if req.CategoryID <= 0 {
		return entity.NewValidationError("category_id", "is required")
	}
	if req.BudgetType != entity.BudgetFixed && req.BudgetType != entity.BudgetHourly {
		return entity.NewValidationError("budget_type", "must be fixed or hourly")
	}
	if req.BudgetAmount <= 0 {
		return entity.NewValidationError("budget_amount", "must be positive")
	}
	if req.Location == "" {
		return entity.NewValidationError("location", "is required")
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return entity.NewValidationError("latitude", "must be within [-90, 90]")
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return entity.NewValidationError("longitude", "must be within [-180, 180]")
	}
	return nil
}

// CreateTask создает задачу в статусе open от имени клиента
func (s *TaskService) CreateTask(ctx context.Context, p *entity.Principal, req *entity.CreateTaskRequest) (*entity.Task, error) {
	// 1. Авторизация
	if err := s.policy.CanPerform(p, ActionCreateTask, nil); err != nil {
		return nil, err
	}

	// 2. Валидация
	if err := validateCreateTask(req); err != nil {
		return nil, err
	}

	// 3. Проверяем что клиент существует и активен
	user, err := s.userRepo.GetById(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, entity.ErrUserNotFound
	}

	// 4. Владелец берется из principal, не из тела запроса
	task, err := s.taskRepo.Create(ctx, p.UserID, req)
	if err != nil {
		return nil, err
	}

	publishAudit(s.audit, p.UserID, entity.ActionCreate, entity.EntityTask, task.ID, nil, taskValues(task))

	return task, nil
}

// GetTask - задача со ставками
func (s *TaskService) GetTask(ctx context.Context, taskID int) (*entity.TaskWithBids, error) {
	task, err := s.taskRepo.GetWithBids(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]entity.Task, error) {
	return s.taskRepo.List(ctx, filter)
}

// ListUserTasks - задачи, созданные пользователем
func (s *TaskService) ListUserTasks(ctx context.Context, p *entity.Principal, status string) ([]entity.Task, error) {
	if p == nil {
		return nil, entity.ErrForbidden
	}
	return s.taskRepo.List(ctx, repository.TaskFilter{ClientID: p.UserID, Status: status})
}

// ChangeStatus выполняет явный переход статуса задачи (cancel/dispute/resolve).
// Переходы через ставки и букинги идут через BidEngine и BookingService.
func (s *TaskService) ChangeStatus(ctx context.Context, p *entity.Principal, taskID int, action entity.TaskAction) (*entity.Task, error) {
	task, err := s.taskRepo.GetByTaskId(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	var target entity.TaskStatus
	switch action {
	case entity.TaskActionCancel:
		target = entity.StatusCanceled
		if err := s.policy.CanPerform(p, ActionCancelTask, task); err != nil {
			return nil, err
		}

	case entity.TaskActionDispute:
		target = entity.StatusDisputed
		booking, err := s.bookingRepo.GetByTaskId(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			// спор возможен только по задаче в работе, у нее всегда есть букинг
			return nil, &entity.InvalidTransitionError{Entity: "task", From: string(task.Status), To: string(target)}
		}
		if err := s.policy.CanPerform(p, ActionDisputeTask, booking); err != nil {
			return nil, err
		}

	case entity.TaskActionResolve:
		target = entity.StatusInProgress
		if err := s.policy.CanPerform(p, ActionResolveTask, task); err != nil {
			return nil, err
		}

	default:
		return nil, entity.NewValidationError("action", "must be cancel, dispute or resolve")
	}

	if !task.Status.CanTransition(target) {
		return nil, &entity.InvalidTransitionError{Entity: "task", From: string(task.Status), To: string(target)}
	}

	updated, err := s.taskRepo.UpdateStatus(ctx, taskID, task.Status, target)
	if err != nil {
		return nil, err
	}

	publishAudit(s.audit, p.UserID, entity.ActionTransition, entity.EntityTask, taskID, taskValues(task), taskValues(updated))

	return updated, nil
}
