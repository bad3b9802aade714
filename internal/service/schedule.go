package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/calendar"
)

const defaultDayStartTime = "08:00"

type ScheduleServiceImpl struct {
	repo        repository.ScheduleRepository
	bookingRepo repository.BookingRepository
	cfg         config.ScheduleConfig
	logger      *zap.Logger

	// now вынесено в поле, чтобы тесты могли зафиксировать время.
	now func() time.Time
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	cfg config.ScheduleConfig,
	logger *zap.Logger,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateSchedule валидирует параметры и атомарно пересоздаёт доступность
// врача на месяц: старые записи диапазона удаляются и заменяются новыми в
// одной транзакции, конфигурация слотов заменяется целиком. До первой
// записи в хранилище не доходит ни одна невалидная комбинация параметров.
func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, doctorID int64, dto domain.CreateScheduleDTO) error {
	if err := validateScheduleDTO(dto); err != nil {
		return err
	}

	now := s.now().UTC()

	if calendar.IsPastMonth(dto.Year, dto.Month, now) {
		return domain.NewScheduleError(domain.ScheduleErrPastMonth, "нельзя создать расписание на прошедший месяц")
	}

	startDate := calendar.MonthStart(dto.Year, dto.Month)
	endDate := calendar.MonthEnd(dto.Year, dto.Month)

	// Для текущего месяца доступность начинается не раньше завтрашнего дня
	// (сдвиг настраивается): сегодняшний день пересозданию не подлежит.
	today := calendar.DayStart(now)
	if dto.Year == now.Year() && dto.Month == int(now.Month()) && !startDate.After(today) {
		startDate = today.AddDate(0, 0, s.cfg.TodayCutoffDays)
	}

	days := make([]domain.DayAvailability, 0, 31)
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if !containsWeekday(dto.DaysOfWeek, int(d.Weekday())) {
			continue
		}
		days = append(days, domain.DayAvailability{
			DoctorID:    doctorID,
			Date:        d,
			StartTime:   defaultDayStartTime,
			IsAvailable: true,
		})
	}

	cfg := domain.ScheduleConfig{
		DoctorID:     doctorID,
		SlotDuration: dto.SlotDuration,
		SlotsPerDay:  dto.SlotsPerDay,
		UpdatedAt:    now,
	}

	if err := s.repo.ReplaceRange(ctx, doctorID, startDate, endDate, days, cfg); err != nil {
		s.logger.Error("ошибка пересоздания расписания",
			zap.Int64("doctorId", doctorID),
			zap.Int("month", dto.Month),
			zap.Int("year", dto.Year),
			zap.Error(err),
		)
		return &domain.ScheduleError{
			Kind:    domain.ScheduleErrStoreFailure,
			Message: fmt.Sprintf("не удалось создать расписание: %v", err),
		}
	}

	s.logger.Info("расписание создано",
		zap.Int64("doctorId", doctorID),
		zap.Int("month", dto.Month),
		zap.Int("year", dto.Year),
		zap.Int("days", len(days)),
	)

	return nil
}

// GetSchedule отдаёт свободные слоты врача на день. Три независимых чтения
// (конфигурация, доступность, бронирования) выполняются параллельно.
// Недоступность бронирований деградирует до пустого списка с предупреждением:
// расписание без учёта занятости полезнее жёсткой ошибки.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, doctorID int64, date string) (*domain.DaySchedule, error) {
	selectedDate, err := calendar.ParseDate(date)
	if err != nil {
		return nil, domain.NewScheduleError(domain.ScheduleErrInvalidMonth, "некорректная дата")
	}

	var (
		wg           sync.WaitGroup
		cfg          *domain.ScheduleConfig
		cfgErr       error
		availability *domain.DayAvailability
		availErr     error
		bookings     []domain.Booking
		bookingsErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		cfg, cfgErr = s.repo.GetConfig(ctx, doctorID)
	}()
	go func() {
		defer wg.Done()
		availability, availErr = s.repo.GetDayAvailability(ctx, doctorID, selectedDate)
	}()
	go func() {
		defer wg.Done()
		bookings, bookingsErr = s.bookingRepo.ListByDoctorAndDate(ctx, doctorID, selectedDate)
	}()
	wg.Wait()

	if cfgErr != nil {
		return nil, &domain.ScheduleError{
			Kind:    domain.ScheduleErrStoreFailure,
			Message: fmt.Sprintf("не удалось получить конфигурацию расписания: %v", cfgErr),
		}
	}
	if cfg == nil {
		return &domain.DaySchedule{TimeSlots: []domain.TimeSlot{}, Message: "расписание врача не настроено"}, nil
	}

	if availErr != nil {
		return nil, &domain.ScheduleError{
			Kind:    domain.ScheduleErrStoreFailure,
			Message: fmt.Sprintf("не удалось получить доступность: %v", availErr),
		}
	}
	if availability == nil || !availability.IsAvailable {
		return &domain.DaySchedule{TimeSlots: []domain.TimeSlot{}, Message: "врач недоступен в этот день"}, nil
	}

	if bookingsErr != nil {
		s.logger.Warn("не удалось получить бронирования, слоты считаются свободными",
			zap.Int64("doctorId", doctorID),
			zap.String("date", date),
			zap.Error(bookingsErr),
		)
		bookings = nil
	}

	candidates := generateDaySlots(selectedDate, cfg.SlotDuration, cfg.SlotsPerDay)
	free := filterConflicts(candidates, bookings)
	timeSlots := toTimeSlots(selectedDate, free)

	message := "расписание получено"
	if len(timeSlots) == 0 {
		message = "свободных слотов нет"
	}

	return &domain.DaySchedule{TimeSlots: timeSlots, Message: message}, nil
}

// UpdateAvailability переключает доступность врача на дату. Редактируются
// только будущие дни: сегодняшний и прошедшие отклоняются.
func (s *ScheduleServiceImpl) UpdateAvailability(ctx context.Context, doctorID int64, date string, isAvailable bool) error {
	selectedDate, err := calendar.ParseDate(date)
	if err != nil {
		return domain.NewScheduleError(domain.ScheduleErrInvalidMonth, "некорректная дата")
	}

	if calendar.IsPastOrToday(selectedDate, s.now()) {
		return domain.NewScheduleError(domain.ScheduleErrPastOrCurrentDate, "нельзя изменить доступность на прошедшую или текущую дату")
	}

	err = s.repo.UpsertDayAvailability(ctx, domain.DayAvailability{
		DoctorID:    doctorID,
		Date:        selectedDate,
		StartTime:   defaultDayStartTime,
		IsAvailable: isAvailable,
	})
	if err != nil {
		s.logger.Error("ошибка обновления доступности",
			zap.Int64("doctorId", doctorID),
			zap.String("date", date),
			zap.Error(err),
		)
		return &domain.ScheduleError{
			Kind:    domain.ScheduleErrStoreFailure,
			Message: fmt.Sprintf("не удалось обновить доступность: %v", err),
		}
	}

	return nil
}

func validateScheduleDTO(dto domain.CreateScheduleDTO) error {
	for _, day := range dto.DaysOfWeek {
		if day < 0 || day > 6 {
			return domain.NewScheduleError(domain.ScheduleErrInvalidDays, "дни недели должны быть в диапазоне 0-6")
		}
	}
	if dto.SlotsPerDay <= 0 {
		return domain.NewScheduleError(domain.ScheduleErrInvalidSlotCount, "число слотов в день должно быть положительным")
	}
	if dto.SlotDuration <= 0 {
		return domain.NewScheduleError(domain.ScheduleErrInvalidSlotDuration, "длительность слота должна быть положительной")
	}
	if dto.Month < 1 || dto.Month > 12 {
		return domain.NewScheduleError(domain.ScheduleErrInvalidMonth, "месяц должен быть в диапазоне 1-12")
	}
	if dto.Year < 1900 {
		return domain.NewScheduleError(domain.ScheduleErrInvalidYear, "некорректный год")
	}

	if maxSlots := maxSlotsPerDay(dto.SlotDuration); dto.SlotsPerDay > maxSlots {
		return &domain.ScheduleError{
			Kind:     domain.ScheduleErrCapacityExceeded,
			Message:  fmt.Sprintf("число слотов %d превышает максимум %d с учётом обеденного перерыва", dto.SlotsPerDay, maxSlots),
			MaxSlots: maxSlots,
		}
	}

	return nil
}

func containsWeekday(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
