package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/repository"
)

const maxAvatarSize = 5 * 1024 * 1024

type UserService struct {
	userRepo   repository.IUserRepository
	avatarRepo repository.IAvatarRepository
	policy     *PolicyGate
	audit      AuditPublisher
	uploadDir  string
}

func NewUserService(
	userRepo repository.IUserRepository,
	avatarRepo repository.IAvatarRepository,
	policy *PolicyGate,
	audit AuditPublisher,
	uploadDir string,
) *UserService {
	if uploadDir == "" {
		uploadDir = "var/avatars"
	}
	return &UserService{
		userRepo:   userRepo,
		avatarRepo: avatarRepo,
		policy:     policy,
		audit:      audit,
		uploadDir:  uploadDir,
	}
}

// GetUser получает пользователя по ID
func (s *UserService) GetUser(ctx context.Context, userID int) (*entity.User, error) {
	user, err := s.userRepo.GetById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	return user, nil
}

// UpdateUser обновляет профиль. Свои поля редактирует сам пользователь,
// is_available на любом пользователе переключает только админ.
func (s *UserService) UpdateUser(ctx context.Context, p *entity.Principal, userID int, req *entity.UpdateUserRequest) (*entity.User, error) {
	user, err := s.userRepo.GetById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	updates := make(map[string]interface{})

	if req.IsAvailable != nil {
		if err := s.policy.CanPerform(p, ActionToggleAvailability, user); err != nil {
			return nil, err
		}
		updates["is_available"] = *req.IsAvailable
	}

	if req.Name != "" || req.Bio != nil || req.HourlyRate != nil ||
		req.Department != nil || req.Municipality != nil || req.SkillIds != nil {
		if p == nil || p.UserID != userID {
			return nil, entity.ErrForbidden
		}
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Bio != nil {
			updates["bio"] = *req.Bio
		}
		if req.HourlyRate != nil {
			if *req.HourlyRate <= 0 {
				return nil, entity.NewValidationError("hourly_rate", "must be positive")
			}
			updates["hourly_rate"] = *req.HourlyRate
		}
		if req.Department != nil {
			updates["department"] = *req.Department
		}
		if req.Municipality != nil {
			updates["municipality"] = *req.Municipality
		}
		if req.SkillIds != nil {
			updates["skill_ids"] = req.SkillIds
		}
	}

	if len(updates) == 0 {
		return nil, entity.ErrNoFieldsToUpdate
	}

	updated, err := s.userRepo.Update(ctx, userID, updates)
	if err != nil {
		return nil, err
	}

	publishAudit(s.audit, p.UserID, entity.ActionUpdate, entity.EntityUser, userID, nil, updates)

	return updated, nil
}

// ListUsers - список пользователей для админ-панели
func (s *UserService) ListUsers(ctx context.Context, p *entity.Principal, search string) ([]entity.User, error) {
	if err := s.policy.CanPerform(p, ActionListUsers, nil); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, search)
}

// UploadAvatar загружает фото профиля пользователя
func (s *UserService) UploadAvatar(ctx context.Context, p *entity.Principal, data []byte, contentType string) (string, error) {
	if p == nil {
		return "", entity.ErrForbidden
	}

	user, err := s.userRepo.GetById(ctx, p.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", entity.ErrUserNotFound
	}

	if len(data) == 0 {
		return "", entity.NewValidationError("file", "is empty")
	}
	if len(data) > maxAvatarSize {
		return "", entity.NewValidationError("file", "exceeds 5MB limit")
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("avatar_%d_%d", p.UserID, time.Now().UnixNano())
	filePath := filepath.Join(s.uploadDir, fileName)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", err
	}

	// Удаляем старый файл если существует
	oldAvatar, err := s.avatarRepo.GetByUserId(ctx, p.UserID)
	if err == nil && oldAvatar != nil {
		os.Remove(oldAvatar.FilePath)
	}

	avatar := &entity.Avatar{
		UserID:      p.UserID,
		FilePath:    filePath,
		FileSize:    len(data),
		ContentType: contentType,
	}
	if _, err := s.avatarRepo.Save(ctx, avatar); err != nil {
		os.Remove(filePath)
		return "", err
	}

	avatarURL := "/avatars/" + fileName
	if _, err := s.userRepo.Update(ctx, p.UserID, map[string]interface{}{"avatar_url": avatarURL}); err != nil {
		return "", err
	}

	return avatarURL, nil
}
