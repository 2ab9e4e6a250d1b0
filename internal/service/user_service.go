package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stockflow/internal/cache"
	apperrors "stockflow/internal/errors"
	"stockflow/internal/model"
	"stockflow/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile operations for the signed-in user.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdatePreferences(ctx context.Context, id uint, emailNotifications bool) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

// UpdatePreferences toggles whether the user receives alert emails.
func (s *userService) UpdatePreferences(ctx context.Context, id uint, emailNotifications bool) (*model.User, error) {
	if id == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	affected, err := s.repo.UpdateEmailNotifications(ctx, id, emailNotifications)
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	if affected == 0 {
		// mysql reports 0 affected rows when the value is unchanged
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, err
		}
	}
	return s.GetUser(ctx, id)
}
