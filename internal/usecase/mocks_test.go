package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/repository"
)

// MockTaskRepository - мок для ITaskRepository
type MockTaskRepository struct {
	CreateFunc       func(ctx context.Context, clientID int, req *entity.CreateTaskRequest) (*entity.Task, error)
	GetByTaskIdFunc  func(ctx context.Context, taskId int) (*entity.Task, error)
	GetWithBidsFunc  func(ctx context.Context, taskId int) (*entity.TaskWithBids, error)
	UpdateStatusFunc func(ctx context.Context, id int, from, to entity.TaskStatus) (*entity.Task, error)
	ListFunc         func(ctx context.Context, filter repository.TaskFilter) ([]entity.Task, error)
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, clientID int, req *entity.CreateTaskRequest) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, clientID, req)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error) {
	if m.GetByTaskIdFunc != nil {
		return m.GetByTaskIdFunc(ctx, taskId)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetWithBids(ctx context.Context, taskId int) (*entity.TaskWithBids, error) {
	if m.GetWithBidsFunc != nil {
		return m.GetWithBidsFunc(ctx, taskId)
	}
	return nil, nil
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id int, from, to entity.TaskStatus) (*entity.Task, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to)
	}
	return nil, nil
}

func (m *MockTaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

// MockBidRepository - мок для IBidRepository
type MockBidRepository struct {
	CreateFunc               func(ctx context.Context, taskerID int, req *entity.SubmitBidRequest) (*entity.Bid, error)
	GetByBidIdFunc           func(ctx context.Context, bidId int) (*entity.Bid, error)
	UpdateStatusFunc         func(ctx context.Context, id int, from, to entity.BidStatus) (*entity.Bid, error)
	AcceptFunc               func(ctx context.Context, bidId int) (*entity.AcceptBidResult, error)
	ListByTaskFunc           func(ctx context.Context, taskId int) ([]entity.Bid, error)
	ListPendingByTaskerFunc  func(ctx context.Context, taskerID int) ([]entity.Bid, error)
	ListPendingForClientFunc func(ctx context.Context, clientID int) ([]entity.Bid, error)
}

var _ repository.IBidRepository = (*MockBidRepository)(nil)

func (m *MockBidRepository) Create(ctx context.Context, taskerID int, req *entity.SubmitBidRequest) (*entity.Bid, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, taskerID, req)
	}
	return nil, nil
}

func (m *MockBidRepository) GetByBidId(ctx context.Context, bidId int) (*entity.Bid, error) {
	if m.GetByBidIdFunc != nil {
		return m.GetByBidIdFunc(ctx, bidId)
	}
	return nil, nil
}

func (m *MockBidRepository) UpdateStatus(ctx context.Context, id int, from, to entity.BidStatus) (*entity.Bid, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to)
	}
	return nil, nil
}

func (m *MockBidRepository) Accept(ctx context.Context, bidId int) (*entity.AcceptBidResult, error) {
	if m.AcceptFunc != nil {
		return m.AcceptFunc(ctx, bidId)
	}
	return nil, nil
}

func (m *MockBidRepository) ListByTask(ctx context.Context, taskId int) ([]entity.Bid, error) {
	if m.ListByTaskFunc != nil {
		return m.ListByTaskFunc(ctx, taskId)
	}
	return nil, nil
}

func (m *MockBidRepository) ListPendingByTasker(ctx context.Context, taskerID int) ([]entity.Bid, error) {
	if m.ListPendingByTaskerFunc != nil {
		return m.ListPendingByTaskerFunc(ctx, taskerID)
	}
	return nil, nil
}

func (m *MockBidRepository) ListPendingForClient(ctx context.Context, clientID int) ([]entity.Bid, error) {
	if m.ListPendingForClientFunc != nil {
		return m.ListPendingForClientFunc(ctx, clientID)
	}
	return nil, nil
}

// MockBookingRepository - мок для IBookingRepository
type MockBookingRepository struct {
	GetByBookingIdFunc   func(ctx context.Context, bookingId int) (*entity.Booking, error)
	GetByTaskIdFunc      func(ctx context.Context, taskId int) (*entity.Booking, error)
	StartFunc            func(ctx context.Context, bookingId int) (*entity.Booking, error)
	CompleteFunc         func(ctx context.Context, bookingId int) (*entity.Booking, error)
	ListActiveByUserFunc func(ctx context.Context, userID int) ([]entity.Booking, error)
}

var _ repository.IBookingRepository = (*MockBookingRepository)(nil)

func (m *MockBookingRepository) GetByBookingId(ctx context.Context, bookingId int) (*entity.Booking, error) {
	if m.GetByBookingIdFunc != nil {
		return m.GetByBookingIdFunc(ctx, bookingId)
	}
	return nil, nil
}

func (m *MockBookingRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Booking, error) {
	if m.GetByTaskIdFunc != nil {
		return m.GetByTaskIdFunc(ctx, taskId)
	}
	return nil, nil
}

func (m *MockBookingRepository) Start(ctx context.Context, bookingId int) (*entity.Booking, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, bookingId)
	}
	return nil, nil
}

func (m *MockBookingRepository) Complete(ctx context.Context, bookingId int) (*entity.Booking, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, bookingId)
	}
	return nil, nil
}

func (m *MockBookingRepository) ListActiveByUser(ctx context.Context, userID int) ([]entity.Booking, error) {
	if m.ListActiveByUserFunc != nil {
		return m.ListActiveByUserFunc(ctx, userID)
	}
	return nil, nil
}

// MockReviewRepository - мок для IReviewRepository
type MockReviewRepository struct {
	CreateFunc                  func(ctx context.Context, review *entity.Review) (*entity.Review, error)
	GetByBookingAndReviewerFunc func(ctx context.Context, bookingId, reviewerID int) (*entity.Review, error)
	ListByRevieweeFunc          func(ctx context.Context, revieweeID int) ([]entity.Review, error)
}

var _ repository.IReviewRepository = (*MockReviewRepository)(nil)

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, review)
	}
	return nil, nil
}

func (m *MockReviewRepository) GetByBookingAndReviewer(ctx context.Context, bookingId, reviewerID int) (*entity.Review, error) {
	if m.GetByBookingAndReviewerFunc != nil {
		return m.GetByBookingAndReviewerFunc(ctx, bookingId, reviewerID)
	}
	return nil, nil
}

func (m *MockReviewRepository) ListByReviewee(ctx context.Context, revieweeID int) ([]entity.Review, error) {
	if m.ListByRevieweeFunc != nil {
		return m.ListByRevieweeFunc(ctx, revieweeID)
	}
	return nil, nil
}

// MockUserRepository - мок для IUserRepository
type MockUserRepository struct {
	CreateWithAuthFunc func(ctx context.Context, req *entity.RegisterRequest, passwordHash string) (*entity.User, error)
	GetByIdFunc        func(ctx context.Context, id int) (*entity.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*entity.User, error)
	UpdateFunc         func(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error)
	ListFunc           func(ctx context.Context, search string) ([]entity.User, error)
	GetStatisticsFunc  func(ctx context.Context) (*entity.Statistics, error)
}

var _ repository.IUserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) CreateWithAuth(ctx context.Context, req *entity.RegisterRequest, passwordHash string) (*entity.User, error) {
	if m.CreateWithAuthFunc != nil {
		return m.CreateWithAuthFunc(ctx, req, passwordHash)
	}
	return nil, nil
}

func (m *MockUserRepository) GetById(ctx context.Context, id int) (*entity.User, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]entity.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search)
	}
	return nil, nil
}

func (m *MockUserRepository) GetStatistics(ctx context.Context) (*entity.Statistics, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx)
	}
	return nil, nil
}

// MockRefreshTokenRepository - мок для IRefreshTokenRepository
type MockRefreshTokenRepository struct {
	SaveFunc      func(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	GetByHashFunc func(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	RevokeFunc    func(ctx context.Context, tokenHash string) error
	RevokeAllFunc func(ctx context.Context, userID int) error
}

var _ repository.IRefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

func (m *MockRefreshTokenRepository) Save(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, tokenHash, expiresAt)
	}
	return nil
}

func (m *MockRefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	if m.GetByHashFunc != nil {
		return m.GetByHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenHash)
	}
	return nil
}

func (m *MockRefreshTokenRepository) RevokeAll(ctx context.Context, userID int) error {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, userID)
	}
	return nil
}

// MockRabbitMQPublisher - мок для AuditPublisher
type MockRabbitMQPublisher struct {
	PublishAuditMessageFunc func(ctx context.Context, message *entity.AuditMessage) error
}

func (m *MockRabbitMQPublisher) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	if m.PublishAuditMessageFunc != nil {
		return m.PublishAuditMessageFunc(ctx, message)
	}
	return nil
}
