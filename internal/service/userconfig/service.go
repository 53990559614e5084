package userconfig

import (
	"context"
	"fmt"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
)

type UserConfigServiceImpl struct {
	userconfig.UserConfigRepository
	accessService rule.AccessService
}

func NewUserConfigService(configRepo userconfig.UserConfigRepository, accessService rule.AccessService) userconfig.UserConfigService {
	return &UserConfigServiceImpl{
		UserConfigRepository: configRepo,
		accessService:        accessService,
	}
}

// GetConfig implements userconfig.UserConfigService.
func (s *UserConfigServiceImpl) GetConfig(ctx context.Context, userID string) (userconfig.ConfigResponse, error) {
	if err := s.authorize(ctx, userID); err != nil {
		return userconfig.ConfigResponse{}, err
	}

	stored, err := s.UserConfigRepository.GetByUser(ctx, userID)
	if err != nil {
		return userconfig.ConfigResponse{}, fmt.Errorf("failed to load config of user %s: %w", userID, err)
	}
	if stored == nil {
		return userconfig.ToResponse(userconfig.DefaultConfig(userID)), nil
	}
	return userconfig.ToResponse(*stored), nil
}

// UpdateConfig implements userconfig.UserConfigService.
func (s *UserConfigServiceImpl) UpdateConfig(ctx context.Context, req userconfig.UpdateConfigRequest) (userconfig.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return userconfig.ConfigResponse{}, err
	}
	if err := s.authorize(ctx, req.UserID); err != nil {
		return userconfig.ConfigResponse{}, err
	}

	stored, err := s.UserConfigRepository.GetByUser(ctx, req.UserID)
	if err != nil {
		return userconfig.ConfigResponse{}, fmt.Errorf("failed to load config of user %s: %w", req.UserID, err)
	}

	current := userconfig.DefaultConfig(req.UserID)
	if stored != nil {
		current = *stored
	}

	saved, err := s.UserConfigRepository.Upsert(ctx, req.ApplyTo(current))
	if err != nil {
		return userconfig.ConfigResponse{}, fmt.Errorf("failed to store config of user %s: %w", req.UserID, err)
	}
	return userconfig.ToResponse(saved), nil
}

// authorize allows self access and HR reviewers covering the user.
func (s *UserConfigServiceImpl) authorize(ctx context.Context, userID string) error {
	caller, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}
	if caller.UserID == userID {
		return nil
	}

	ok, err := s.accessService.CanAccessUser(ctx, caller.UserID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return userconfig.ErrUnauthorized
	}
	return nil
}
