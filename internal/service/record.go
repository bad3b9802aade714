package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
)

type RecordServiceImpl struct {
	repo        repository.RecordRepository
	patientRepo repository.PatientRepository
	logger      *zap.Logger
}

func NewRecordService(repo repository.RecordRepository, patientRepo repository.PatientRepository, logger *zap.Logger) *RecordServiceImpl {
	return &RecordServiceImpl{
		repo:        repo,
		patientRepo: patientRepo,
		logger:      logger,
	}
}

func (s *RecordServiceImpl) Create(ctx context.Context, doctorID int64, dto domain.CreateMedicalRecordDTO) (int64, error) {
	patient, err := s.patientRepo.GetByID(ctx, dto.PatientID)
	if err != nil {
		return 0, err
	}
	if patient == nil {
		return 0, errors.New("пациент не найден")
	}

	id, err := s.repo.Create(ctx, doctorID, dto)
	if err != nil {
		s.logger.Error("ошибка создания медицинской записи",
			zap.Int64("doctorId", doctorID),
			zap.Int64("patientId", dto.PatientID),
			zap.Error(err),
		)
		return 0, err
	}

	return id, nil
}

func (s *RecordServiceImpl) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.New("медицинская запись не найдена")
	}
	return record, nil
}

func (s *RecordServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error {
	return s.repo.Update(ctx, id, dto)
}

func (s *RecordServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *RecordServiceImpl) List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}
