package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/storage"
)

type DoctorServiceImpl struct {
	repo        repository.DoctorRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewDoctorService(
	repo repository.DoctorRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:        repo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *DoctorServiceImpl) Create(ctx context.Context, dto domain.CreateDoctorProfileDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, dto.UserID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, errors.New("пользователь не найден")
	}
	if user.Role != domain.UserRoleDoctor {
		return 0, errors.New("пользователь не является врачом")
	}

	existing, err := s.repo.GetByUserID(ctx, dto.UserID)
	if err == nil && existing != nil {
		return 0, errors.New("профиль врача уже существует")
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания профиля врача", zap.Int64("userId", dto.UserID), zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, errors.New("врач не найден")
	}
	return doctor, nil
}

func (s *DoctorServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error) {
	doctor, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, errors.New("врач не найден")
	}
	return doctor, nil
}

func (s *DoctorServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateDoctorProfileDTO) error {
	return s.repo.Update(ctx, id, dto)
}

func (s *DoctorServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *DoctorServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.DoctorProfile, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *DoctorServiceImpl) UploadAvatar(ctx context.Context, id int64, photo []byte, filename string) (string, error) {
	doctor, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки аватара врача", zap.Int64("doctorId", id), zap.Error(err))
		return "", err
	}

	if err := s.repo.UpdateAvatar(ctx, id, &url); err != nil {
		return "", err
	}

	// Старый аватар чистим после успешного обновления ссылки.
	if doctor.AvatarURL != nil {
		if err := s.fileStorage.DeleteFile(ctx, *doctor.AvatarURL); err != nil {
			s.logger.Warn("не удалось удалить старый аватар", zap.Int64("doctorId", id), zap.Error(err))
		}
	}

	return url, nil
}

func (s *DoctorServiceImpl) DeleteAvatar(ctx context.Context, id int64) error {
	doctor, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if doctor.AvatarURL == nil {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, *doctor.AvatarURL); err != nil {
		s.logger.Warn("не удалось удалить аватар из хранилища", zap.Int64("doctorId", id), zap.Error(err))
	}

	return s.repo.UpdateAvatar(ctx, id, nil)
}
