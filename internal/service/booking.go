package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/calendar"
)

type BookingServiceImpl struct {
	repo         repository.BookingRepository
	scheduleRepo repository.ScheduleRepository
	cfg          config.ScheduleConfig
	logger       *zap.Logger

	now func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	scheduleRepo repository.ScheduleRepository,
	cfg config.ScheduleConfig,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// Create создаёт бронирование со статусом Pending. Слот проверяется на
// занятость по активным бронированиям: отменённые слот не удерживают.
func (s *BookingServiceImpl) Create(ctx context.Context, patientID int64, dto domain.CreateBookingDTO) (*domain.Booking, error) {
	date, err := calendar.ParseDate(dto.Date)
	if err != nil {
		return nil, errors.New("некорректная дата бронирования")
	}

	if _, err := parseClockMinutes(dto.StartTime); err != nil {
		return nil, errors.New("некорректное время начала")
	}

	if dto.Duration <= 0 {
		return nil, errors.New("некорректная длительность")
	}

	if calendar.DayStart(date).Before(calendar.DayStart(s.now())) {
		return nil, errors.New("нельзя забронировать прошедшую дату")
	}

	availability, err := s.scheduleRepo.GetDayAvailability(ctx, dto.DoctorID, date)
	if err != nil {
		s.logger.Error("ошибка проверки доступности врача", zap.Int64("doctorId", dto.DoctorID), zap.Error(err))
		return nil, errors.New("не удалось проверить доступность врача")
	}
	if availability == nil || !availability.IsAvailable {
		return nil, errors.New("врач недоступен в этот день")
	}

	occupied, err := s.repo.ExistsActiveSlot(ctx, dto.DoctorID, date, dto.StartTime)
	if err != nil {
		s.logger.Error("ошибка проверки занятости слота", zap.Int64("doctorId", dto.DoctorID), zap.Error(err))
		return nil, errors.New("не удалось проверить занятость слота")
	}
	if occupied {
		return nil, errors.New("слот уже занят")
	}

	now := s.now()
	booking := domain.Booking{
		ID:          uuid.New().String(),
		BookingCode: newBookingCode(),
		DoctorID:    dto.DoctorID,
		PatientID:   patientID,
		Date:        date,
		StartTime:   dto.StartTime,
		Duration:    dto.Duration,
		Price:       dto.Price,
		PromoCodeID: dto.PromoCodeID,
		GiftCodeID:  dto.GiftCodeID,
		Status:      domain.BookingStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.logger.Error("ошибка создания бронирования", zap.Int64("doctorId", dto.DoctorID), zap.Error(err))
		return nil, errors.New("не удалось создать бронирование")
	}

	s.logger.Info("бронирование создано",
		zap.String("bookingId", booking.ID),
		zap.String("bookingCode", booking.BookingCode),
		zap.Int64("doctorId", dto.DoctorID),
		zap.Int64("patientId", patientID),
	)

	return &booking, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("бронирование не найдено")
	}
	return booking, nil
}

func (s *BookingServiceImpl) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *BookingServiceImpl) Cancel(ctx context.Context, id string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == domain.BookingStatusCancelled {
		return errors.New("бронирование уже отменено")
	}

	return s.repo.UpdateStatus(ctx, id, domain.BookingStatusCancelled)
}

func (s *BookingServiceImpl) Confirm(ctx context.Context, id string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != domain.BookingStatusPending {
		return errors.New("подтвердить можно только ожидающее бронирование")
	}

	return s.repo.UpdateStatus(ctx, id, domain.BookingStatusConfirmed)
}

// ExpireStalePending отменяет неоплаченные бронирования старше TTL.
// Вызывается фоновым планировщиком.
func (s *BookingServiceImpl) ExpireStalePending(ctx context.Context) (int64, error) {
	olderThan := s.now().Add(-s.cfg.PendingTTL)

	expired, err := s.repo.ExpirePending(ctx, olderThan)
	if err != nil {
		s.logger.Error("ошибка отмены просроченных бронирований", zap.Error(err))
		return 0, err
	}

	if expired > 0 {
		s.logger.Info("отменены просроченные бронирования", zap.Int64("count", expired))
	}

	return expired, nil
}

func newBookingCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "BK-" + id[:6]
}
