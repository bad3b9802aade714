package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/auth"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/validator"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	if !validator.ValidateEmail(dto.Email) {
		return 0, errors.New("некорректный email")
	}
	if !validator.ValidatePassword(dto.Password) {
		return 0, errors.New("пароль слишком короткий")
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err == nil && existing != nil {
		return 0, errors.New("пользователь с таким email уже существует")
	}

	passwordHash, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return 0, errors.New("ошибка при создании пользователя")
	}

	id, err := s.repo.Create(ctx, dto, passwordHash)
	if err != nil {
		s.logger.Error("ошибка при создании пользователя", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("пользователь не найден")
	}
	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	if dto.Email != nil && !validator.ValidateEmail(*dto.Email) {
		return errors.New("некорректный email")
	}
	return s.repo.Update(ctx, id, dto)
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
