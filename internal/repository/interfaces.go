package repository

import (
	"context"
	"time"

	"github.com/St1cky1/marketplace-service/internal/entity"
)

// TaskFilter - фильтр списка задач
type TaskFilter struct {
	ClientID int
	Status   string
	Category int
}

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, clientID int, req *entity.CreateTaskRequest) (*entity.Task, error)
	GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error)
	GetWithBids(ctx context.Context, taskId int) (*entity.TaskWithBids, error)
	// UpdateStatus - compare-and-set: переход выполняется только если статус все еще from
	UpdateStatus(ctx context.Context, id int, from, to entity.TaskStatus) (*entity.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]entity.Task, error)
}

// IBidRepository - интерфейс для BidRepository
type IBidRepository interface {
	// Create создает pending-ставку в транзакции с блокировкой строки задачи
	Create(ctx context.Context, taskerID int, req *entity.SubmitBidRequest) (*entity.Bid, error)
	GetByBidId(ctx context.Context, bidId int) (*entity.Bid, error)
	UpdateStatus(ctx context.Context, id int, from, to entity.BidStatus) (*entity.Bid, error)
	// Accept - единственная мульти-сущностная транзакция: принятие ставки,
	// отклонение остальных pending-ставок, перевод задачи в assigned и создание букинга
	Accept(ctx context.Context, bidId int) (*entity.AcceptBidResult, error)
	ListByTask(ctx context.Context, taskId int) ([]entity.Bid, error)
	ListPendingByTasker(ctx context.Context, taskerID int) ([]entity.Bid, error)
	ListPendingForClient(ctx context.Context, clientID int) ([]entity.Bid, error)
}

// IBookingRepository - интерфейс для BookingRepository
type IBookingRepository interface {
	GetByBookingId(ctx context.Context, bookingId int) (*entity.Booking, error)
	GetByTaskId(ctx context.Context, taskId int) (*entity.Booking, error)
	// Start и Complete переводят букинг и его задачу атомарно, в одной транзакции
	Start(ctx context.Context, bookingId int) (*entity.Booking, error)
	Complete(ctx context.Context, bookingId int) (*entity.Booking, error)
	ListActiveByUser(ctx context.Context, userID int) ([]entity.Booking, error)
}

// IReviewRepository - интерфейс для ReviewRepository
type IReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) (*entity.Review, error)
	GetByBookingAndReviewer(ctx context.Context, bookingId, reviewerID int) (*entity.Review, error)
	ListByReviewee(ctx context.Context, revieweeID int) ([]entity.Review, error)
}

// IUserRepository - интерфейс для UserRepository
type IUserRepository interface {
	CreateWithAuth(ctx context.Context, req *entity.RegisterRequest, passwordHash string) (*entity.User, error)
	GetById(ctx context.Context, id int) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error)
	List(ctx context.Context, search string) ([]entity.User, error)
	GetStatistics(ctx context.Context) (*entity.Statistics, error)
}

// IRefreshTokenRepository - интерфейс для RefreshTokenRepository
type IRefreshTokenRepository interface {
	Save(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	GetByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAll(ctx context.Context, userID int) error
}

// IAvatarRepository - интерфейс для AvatarRepository
type IAvatarRepository interface {
	Save(ctx context.Context, avatar *entity.Avatar) (*entity.Avatar, error)
	GetByUserId(ctx context.Context, userId int) (*entity.Avatar, error)
	DeleteByUserId(ctx context.Context, userId int) error
}

// IAuditRepository - интерфейс для AuditRepository
type IAuditRepository interface {
	Create(ctx context.Context, audit *entity.AuditRecord) error
	ListByEntity(ctx context.Context, entityType entity.EntityType, entityID int) ([]entity.AuditRecord, error)
}
