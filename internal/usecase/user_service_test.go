package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/St1cky1/marketplace-service/internal/entity"
)

func TestUpdateUserProfileSelf(t *testing.T) {
	ctx := context.Background()

	var appliedUpdates map[string]interface{}
	mockUserRepo := &MockUserRepository{
		GetByIdFunc: func(ctx context.Context, id int) (*entity.User, error) {
			return &entity.User{ID: id, Role: entity.RoleTasker, IsActive: true}, nil
		},
		UpdateFunc: func(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error) {
			appliedUpdates = updates
			return &entity.User{ID: id, Name: "Новое имя"}, nil
		},
	}

	service := NewUserService(mockUserRepo, nil, NewPolicyGate(), &MockRabbitMQPublisher{}, "")

	bio := "Сантехник с опытом"
	user, err := service.UpdateUser(ctx, taskerPrincipal(2), 2, &entity.UpdateUserRequest{Name: "Новое имя", Bio: &bio})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Name != "Новое имя" {
		t.Errorf("Expected updated name, got %s", user.Name)
	}
	if appliedUpdates["bio"] != bio {
		t.Errorf("Expected bio in updates, got %v", appliedUpdates)
	}
}

func TestUpdateUserProfileByAnotherUser(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := &MockUserRepository{
		GetByIdFunc: func(ctx context.Context, id int) (*entity.User, error) {
			return &entity.User{ID: id, Role: entity.RoleTasker, IsActive: true}, nil
		},
	}

	service := NewUserService(mockUserRepo, nil, NewPolicyGate(), &MockRabbitMQPublisher{}, "")

	_, err := service.UpdateUser(ctx, taskerPrincipal(3), 2, &entity.UpdateUserRequest{Name: "Чужое имя"})
	if !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestToggleAvailabilityAdminOnly(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := &MockUserRepository{
		GetByIdFunc: func(ctx context.Context, id int) (*entity.User, error) {
			return &entity.User{ID: id, Role: entity.RoleTasker, IsAvailable: true, IsActive: true}, nil
		},
		UpdateFunc: func(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error) {
			return &entity.User{ID: id, IsAvailable: false}, nil
		},
	}

	service := NewUserService(mockUserRepo, nil, NewPolicyGate(), &MockRabbitMQPublisher{}, "")

	off := false
	admin := &entity.Principal{UserID: 100, Role: entity.RoleAdmin}
	user, err := service.UpdateUser(ctx, admin, 2, &entity.UpdateUserRequest{IsAvailable: &off})
	if err != nil {
		t.Fatalf("Expected no error for admin, got %v", err)
	}
	if user.IsAvailable {
		t.Error("Expected availability to be off")
	}

	// таскер не переключает даже себе
	_, err = service.UpdateUser(ctx, taskerPrincipal(2), 2, &entity.UpdateUserRequest{IsAvailable: &off})
	if !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestUpdateUserNoFields(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := &MockUserRepository{
		GetByIdFunc: func(ctx context.Context, id int) (*entity.User, error) {
			return &entity.User{ID: id, IsActive: true}, nil
		},
	}

	service := NewUserService(mockUserRepo, nil, NewPolicyGate(), &MockRabbitMQPublisher{}, "")

	_, err := service.UpdateUser(ctx, taskerPrincipal(2), 2, &entity.UpdateUserRequest{})
	if !errors.Is(err, entity.ErrNoFieldsToUpdate) {
		t.Errorf("Expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestListUsersAdminOnly(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := &MockUserRepository{
		ListFunc: func(ctx context.Context, search string) ([]entity.User, error) {
			return []entity.User{{ID: 1}, {ID: 2}}, nil
		},
	}

	service := NewUserService(mockUserRepo, nil, NewPolicyGate(), &MockRabbitMQPublisher{}, "")

	admin := &entity.Principal{UserID: 100, Role: entity.RoleAdmin}
	users, err := service.ListUsers(ctx, admin, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}

	if _, err := service.ListUsers(ctx, clientPrincipal(1), ""); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for client, got %v", err)
	}
}

func TestGetStatisticsAdminOnly(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := &MockUserRepository{
		GetStatisticsFunc: func(ctx context.Context) (*entity.Statistics, error) {
			return &entity.Statistics{TotalUsers: 10, TotalTasks: 3}, nil
		},
	}

	// nil redis: кэш отключен, статистика считается напрямую
	service := NewStatsService(mockUserRepo, NewPolicyGate(), nil, "")

	admin := &entity.Principal{UserID: 100, Role: entity.RoleAdmin}
	stats, err := service.GetStatistics(ctx, admin)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.TotalUsers != 10 {
		t.Errorf("Expected 10 users, got %d", stats.TotalUsers)
	}

	if _, err := service.GetStatistics(ctx, taskerPrincipal(2)); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for tasker, got %v", err)
	}
}
