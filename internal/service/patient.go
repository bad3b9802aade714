package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/storage"
)

type PatientServiceImpl struct {
	repo        repository.PatientRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewPatientService(
	repo repository.PatientRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *PatientServiceImpl {
	return &PatientServiceImpl{
		repo:        repo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *PatientServiceImpl) Create(ctx context.Context, dto domain.CreatePatientProfileDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, dto.UserID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, errors.New("пользователь не найден")
	}

	existing, err := s.repo.GetByUserID(ctx, dto.UserID)
	if err == nil && existing != nil {
		return 0, errors.New("профиль пациента уже существует")
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания профиля пациента", zap.Int64("userId", dto.UserID), zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *PatientServiceImpl) GetByID(ctx context.Context, id int64) (*domain.PatientProfile, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, errors.New("пациент не найден")
	}
	return patient, nil
}

func (s *PatientServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.PatientProfile, error) {
	patient, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, errors.New("пациент не найден")
	}
	return patient, nil
}

func (s *PatientServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdatePatientProfileDTO) error {
	return s.repo.Update(ctx, id, dto)
}

func (s *PatientServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *PatientServiceImpl) UploadAvatar(ctx context.Context, id int64, photo []byte, filename string) (string, error) {
	patient, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки аватара пациента", zap.Int64("patientId", id), zap.Error(err))
		return "", err
	}

	if err := s.repo.UpdateAvatar(ctx, id, &url); err != nil {
		return "", err
	}

	if patient.AvatarURL != nil {
		if err := s.fileStorage.DeleteFile(ctx, *patient.AvatarURL); err != nil {
			s.logger.Warn("не удалось удалить старый аватар", zap.Int64("patientId", id), zap.Error(err))
		}
	}

	return url, nil
}

func (s *PatientServiceImpl) DeleteAvatar(ctx context.Context, id int64) error {
	patient, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if patient.AvatarURL == nil {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, *patient.AvatarURL); err != nil {
		s.logger.Warn("не удалось удалить аватар из хранилища", zap.Int64("patientId", id), zap.Error(err))
	}

	return s.repo.UpdateAvatar(ctx, id, nil)
}
