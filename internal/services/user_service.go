package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	events    EventService
	logger    *ServiceLogger
	validator *validator.Validator
	clock     clock
}

func NewUserService(repo repositories.Repository, events EventService, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		events:    events,
		logger:    NewServiceLogger(logger, "users"),
		validator: validator,
	}
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if filters.Role != nil && !filters.Role.IsValid() {
		return nil, 0, ErrInvalidRoleFilter
	}
	filters.Search = strings.TrimSpace(filters.Search)

	users, total, err := s.repo.Users().List(ctx, filters)
	if err != nil {
		return nil, 0, repoError(err, nil, "list users")
	}
	return users, total, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrUserNotFound, "get user")
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (user *models.User, err error) {
	started := time.Now()
	defer func() {
		var id uint
		if user != nil {
			id = user.ID
		}
		s.logger.LogOperation(ctx, "create", "user", id, started, err)
	}()

	if err := validateRequest(s.validator, req, CreateUserCodes); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	now := s.clock.now()
	user = &models.User{
		Email:     email,
		FullName:  strings.TrimSpace(req.FullName),
		Role:      role,
		AvatarURL: trimmedPtr(req.AvatarURL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, repoError(err, nil, "create user")
	}

	s.events.UserCreated(ctx, user)
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (user *models.User, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "update", "user", id, started, err) }()

	if err := validateRequest(s.validator, req, UpdateUserCodes); err != nil {
		return nil, err
	}

	user, err = s.repo.Users().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrUserNotFound, "get user")
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.AvatarURL != nil {
		user.AvatarURL = trimmedPtr(req.AvatarURL)
	}
	user.UpdatedAt = s.clock.now()

	if err := s.repo.Users().Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, repoError(err, ErrUserNotFound, "update user")
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) (user *models.User, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "delete", "user", id, started, err) }()

	user, err = s.repo.Users().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrUserNotFound, "get user")
	}
	if err := s.repo.Users().Delete(ctx, id); err != nil {
		return nil, repoError(err, ErrUserNotFound, "delete user")
	}
	return user, nil
}

func (s *userService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.Users().GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != selfID:
		return ErrEmailExists
	case err == nil, repositories.IsNotFound(err):
		return nil
	default:
		return repoError(err, nil, "check email")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
