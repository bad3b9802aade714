package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/calendar"
)

type replaceCall struct {
	from time.Time
	to   time.Time
	days []domain.DayAvailability
	cfg  domain.ScheduleConfig
}

type scheduleRepoStub struct {
	cfg          *domain.ScheduleConfig
	cfgErr       error
	availability map[string]*domain.DayAvailability
	availErr     error
	replaceErr   error

	replaceCalls []replaceCall
	upserts      []domain.DayAvailability
}

func (s *scheduleRepoStub) GetConfig(ctx context.Context, doctorID int64) (*domain.ScheduleConfig, error) {
	return s.cfg, s.cfgErr
}

func (s *scheduleRepoStub) ReplaceRange(ctx context.Context, doctorID int64, from, to time.Time, days []domain.DayAvailability, cfg domain.ScheduleConfig) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaceCalls = append(s.replaceCalls, replaceCall{from: from, to: to, days: days, cfg: cfg})
	return nil
}

func (s *scheduleRepoStub) GetDayAvailability(ctx context.Context, doctorID int64, date time.Time) (*domain.DayAvailability, error) {
	if s.availErr != nil {
		return nil, s.availErr
	}
	return s.availability[calendar.FormatDate(date)], nil
}

func (s *scheduleRepoStub) UpsertDayAvailability(ctx context.Context, availability domain.DayAvailability) error {
	s.upserts = append(s.upserts, availability)
	return nil
}

type bookingRepoStub struct {
	bookings    []domain.Booking
	listErr     error
	activeSlots map[string]bool
	created     []domain.Booking
	statuses    map[string]domain.BookingStatus
	expired     int64
	expiredFrom time.Time
}

func (s *bookingRepoStub) Create(ctx context.Context, booking domain.Booking) error {
	s.created = append(s.created, booking)
	return nil
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	for _, b := range s.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

func (s *bookingRepoStub) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	return s.bookings, len(s.bookings), nil
}

func (s *bookingRepoStub) ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]domain.Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.bookings, nil
}

func (s *bookingRepoStub) ExistsActiveSlot(ctx context.Context, doctorID int64, date time.Time, startTime string) (bool, error) {
	return s.activeSlots[calendar.FormatDate(date)+" "+startTime], nil
}

func (s *bookingRepoStub) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if s.statuses == nil {
		s.statuses = make(map[string]domain.BookingStatus)
	}
	s.statuses[id] = status
	return nil
}

func (s *bookingRepoStub) ExpirePending(ctx context.Context, olderThan time.Time) (int64, error) {
	s.expiredFrom = olderThan
	return s.expired, nil
}

// 15 июня 2025, воскресенье.
var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newScheduleService(repo *scheduleRepoStub, bookings *bookingRepoStub) *ScheduleServiceImpl {
	svc := NewScheduleService(repo, bookings, config.ScheduleConfig{TodayCutoffDays: 1}, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func requireScheduleError(t *testing.T, err error, kind domain.ScheduleErrorKind) *domain.ScheduleError {
	t.Helper()
	var schedErr *domain.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, kind, schedErr.Kind)
	return schedErr
}

func TestCreateSchedule_Validation(t *testing.T) {
	valid := domain.CreateScheduleDTO{
		DaysOfWeek:   []int{1, 2, 3},
		SlotsPerDay:  8,
		SlotDuration: 60,
		Month:        7,
		Year:         2025,
	}

	tests := []struct {
		name   string
		mutate func(*domain.CreateScheduleDTO)
		kind   domain.ScheduleErrorKind
	}{
		{"день недели вне диапазона", func(d *domain.CreateScheduleDTO) { d.DaysOfWeek = []int{1, 7} }, domain.ScheduleErrInvalidDays},
		{"отрицательный день недели", func(d *domain.CreateScheduleDTO) { d.DaysOfWeek = []int{-1} }, domain.ScheduleErrInvalidDays},
		{"нулевое число слотов", func(d *domain.CreateScheduleDTO) { d.SlotsPerDay = 0 }, domain.ScheduleErrInvalidSlotCount},
		{"нулевая длительность", func(d *domain.CreateScheduleDTO) { d.SlotDuration = 0 }, domain.ScheduleErrInvalidSlotDuration},
		{"месяц 13", func(d *domain.CreateScheduleDTO) { d.Month = 13 }, domain.ScheduleErrInvalidMonth},
		{"месяц 0", func(d *domain.CreateScheduleDTO) { d.Month = 0 }, domain.ScheduleErrInvalidMonth},
		{"год до 1900", func(d *domain.CreateScheduleDTO) { d.Year = 1899 }, domain.ScheduleErrInvalidYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &scheduleRepoStub{}
			svc := newScheduleService(repo, &bookingRepoStub{})

			dto := valid
			tt.mutate(&dto)

			err := svc.CreateSchedule(context.Background(), 1, dto)
			requireScheduleError(t, err, tt.kind)
			assert.Empty(t, repo.replaceCalls, "при ошибке валидации записей быть не должно")
		})
	}
}

func TestCreateSchedule_CapacityExceeded(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo, &bookingRepoStub{})

	// 10 часовых слотов не умещаются в 8 рабочих часов.
	err := svc.CreateSchedule(context.Background(), 1, domain.CreateScheduleDTO{
		DaysOfWeek:   []int{1},
		SlotsPerDay:  10,
		SlotDuration: 60,
		Month:        7,
		Year:         2025,
	})

	schedErr := requireScheduleError(t, err, domain.ScheduleErrCapacityExceeded)
	assert.Equal(t, 8, schedErr.MaxSlots, "ошибка должна сообщать максимум слотов")
	assert.Empty(t, repo.replaceCalls)
}

func TestCreateSchedule_PastMonth(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo, &bookingRepoStub{})

	err := svc.CreateSchedule(context.Background(), 1, domain.CreateScheduleDTO{
		DaysOfWeek:   []int{1},
		SlotsPerDay:  8,
		SlotDuration: 60,
		Month:        5,
		Year:         2025,
	})

	requireScheduleError(t, err, domain.ScheduleErrPastMonth)
	assert.Empty(t, repo.replaceCalls)
}

func TestCreateSchedule_CurrentMonthStartsTomorrow(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo, &bookingRepoStub{})

	err := svc.CreateSchedule(context.Background(), 1, domain.CreateScheduleDTO{
		DaysOfWeek:   []int{0, 1, 2, 3, 4, 5, 6},
		SlotsPerDay:  8,
		SlotDuration: 60,
		Month:        6,
		Year:         2025,
	})
	require.NoError(t, err)

	require.Len(t, repo.replaceCalls, 1)
	call := repo.replaceCalls[0]

	assert.Equal(t, "2025-06-16", calendar.FormatDate(call.from), "текущий месяц начинается с завтрашнего дня")
	assert.Equal(t, "2025-06-30", calendar.FormatDate(call.to))

	require.NotEmpty(t, call.days)
	assert.Equal(t, "2025-06-16", calendar.FormatDate(call.days[0].Date))
	for _, day := range call.days {
		assert.True(t, day.IsAvailable)
		assert.False(t, day.Date.Before(call.from), "сегодня и прошедшие дни не пересоздаются")
	}

	assert.Equal(t, 60, call.cfg.SlotDuration)
	assert.Equal(t, 8, call.cfg.SlotsPerDay)
}

func TestCreateSchedule_FutureMonthFromFirstDay(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo, &bookingRepoStub{})

	err := svc.CreateSchedule(context.Background(), 1, domain.CreateScheduleDTO{
		DaysOfWeek:   []int{1},
		SlotsPerDay:  8,
		SlotDuration: 60,
		Month:        7,
		Year:         2025,
	})
	require.NoError(t, err)

	require.Len(t, repo.replaceCalls, 1)
	call := repo.replaceCalls[0]

	assert.Equal(t, "2025-07-01", calendar.FormatDate(call.from))
	assert.Equal(t, "2025-07-31", calendar.FormatDate(call.to))

	// Понедельники июля 2025: 7, 14, 21, 28.
	require.Len(t, call.days, 4)
	for _, day := range call.days {
		assert.Equal(t, time.Monday, day.Date.Weekday())
	}
}

func TestCreateSchedule_StoreFailure(t *testing.T) {
	repo := &scheduleRepoStub{replaceErr: errors.New("соединение потеряно")}
	svc := newScheduleService(repo, &bookingRepoStub{})

	err := svc.CreateSchedule(context.Background(), 1, domain.CreateScheduleDTO{
		DaysOfWeek:   []int{1},
		SlotsPerDay:  8,
		SlotDuration: 60,
		Month:        7,
		Year:         2025,
	})

	requireScheduleError(t, err, domain.ScheduleErrStoreFailure)
}

func availableDay(date string) map[string]*domain.DayAvailability {
	return map[string]*domain.DayAvailability{
		date: {DoctorID: 1, StartTime: "08:00", IsAvailable: true},
	}
}

func TestGetSchedule_FullDay(t *testing.T) {
	repo := &scheduleRepoStub{
		cfg:          &domain.ScheduleConfig{DoctorID: 1, SlotDuration: 60, SlotsPerDay: 8},
		availability: availableDay("2025-06-20"),
	}
	svc := newScheduleService(repo, &bookingRepoStub{})

	schedule, err := svc.GetSchedule(context.Background(), 1, "2025-06-20")
	require.NoError(t, err)

	require.Len(t, schedule.TimeSlots, 8)
	assert.Equal(t, "08:00", schedule.TimeSlots[0].StartTime)
	assert.Equal(t, "13:00", schedule.TimeSlots[4].StartTime, "после обеда слоты продолжаются с 13:00")
	assert.Equal(t, "Friday", schedule.TimeSlots[0].DayOfWeek)
	assert.Equal(t, domain.TimeSlotStatusAvailable, schedule.TimeSlots[0].Status)
}

func TestGetSchedule_BookingRemovesSlot(t *testing.T) {
	repo := &scheduleRepoStub{
		cfg:          &domain.ScheduleConfig{DoctorID: 1, SlotDuration: 60, SlotsPerDay: 8},
		availability: availableDay("2025-06-20"),
	}
	bookings := &bookingRepoStub{
		bookings: []domain.Booking{
			{StartTime: "09:00:00", Duration: 60, Status: domain.BookingStatusConfirmed},
		},
	}
	svc := newScheduleService(repo, bookings)

	schedule, err := svc.GetSchedule(context.Background(), 1, "2025-06-20")
	require.NoError(t, err)

	require.Len(t, schedule.TimeSlots, 7)
	for _, slot := range schedule.TimeSlots {
		assert.NotEqual(t, "09:00", slot.StartTime)
	}
}

func TestGetSchedule_NoConfig(t *testing.T) {
	svc := newScheduleService(&scheduleRepoStub{}, &bookingRepoStub{})

	schedule, err := svc.GetSchedule(context.Background(), 1, "2025-06-20")
	require.NoError(t, err)

	assert.Empty(t, schedule.TimeSlots)
	assert.Equal(t, "расписание врача не настроено", schedule.Message)
}

func TestGetSchedule_DayUnavailable(t *testing.T) {
	repo := &scheduleRepoStub{
		cfg: &domain.ScheduleConfig{DoctorID: 1, SlotDuration: 60, SlotsPerDay: 8},
		availability: map[string]*domain.DayAvailability{
			"2025-06-20": {DoctorID: 1, IsAvailable: false},
		},
	}
	svc := newScheduleService(repo, &bookingRepoStub{})

	schedule, err := svc.GetSchedule(context.Background(), 1, "2025-06-20")
	require.NoError(t, err)

	assert.Empty(t, schedule.TimeSlots)
	assert.Equal(t, "врач недоступен в этот день", schedule.Message)
}

func TestGetSchedule_BookingsFailureDegrades(t *testing.T) {
	repo := &scheduleRepoStub{
		cfg:          &domain.ScheduleConfig{DoctorID: 1, SlotDuration: 60, SlotsPerDay: 8},
		availability: availableDay("2025-06-20"),
	}
	bookings := &bookingRepoStub{listErr: errors.New("таймаут")}
	svc := newScheduleService(repo, bookings)

	schedule, err := svc.GetSchedule(context.Background(), 1, "2025-06-20")
	require.NoError(t, err, "сбой чтения бронирований не должен валить запрос")

	assert.Len(t, schedule.TimeSlots, 8, "при сбое бронирования считаются отсутствующими")
}

func TestGetSchedule_ConfigFailureIsFatal(t *testing.T) {
	repo := &scheduleRepoStub{cfgErr: errors.New("таймаут")}
	svc := newScheduleService(repo, &bookingRepoStub{})

	_, err := svc.GetSchedule(context.Background(), 1, "2025-06-20")
	requireScheduleError(t, err, domain.ScheduleErrStoreFailure)
}

func TestGetSchedule_IdempotentRead(t *testing.T) {
	repo := &scheduleRepoStub{
		cfg:          &domain.ScheduleConfig{DoctorID: 1, SlotDuration: 45, SlotsPerDay: 6},
		availability: availableDay("2025-06-20"),
	}
	bookings := &bookingRepoStub{
		bookings: []domain.Booking{
			{StartTime: "08:45:00", Duration: 45, Status: domain.BookingStatusPending},
		},
	}
	svc := newScheduleService(repo, bookings)

	first, err := svc.GetSchedule(context.Background(), 1, "2025-06-20")
	require.NoError(t, err)
	second, err := svc.GetSchedule(context.Background(), 1, "2025-06-20")
	require.NoError(t, err)

	assert.Equal(t, first, second, "повторное чтение без записей должно давать тот же результат")
}

func TestUpdateAvailability_RejectsPastAndToday(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo, &bookingRepoStub{})

	for _, date := range []string{"2025-06-14", "2025-06-15"} {
		err := svc.UpdateAvailability(context.Background(), 1, date, false)
		requireScheduleError(t, err, domain.ScheduleErrPastOrCurrentDate)
	}

	assert.Empty(t, repo.upserts)
}

func TestUpdateAvailability_FutureDate(t *testing.T) {
	repo := &scheduleRepoStub{}
	svc := newScheduleService(repo, &bookingRepoStub{})

	err := svc.UpdateAvailability(context.Background(), 1, "2025-06-16", false)
	require.NoError(t, err)

	require.Len(t, repo.upserts, 1)
	assert.Equal(t, "2025-06-16", calendar.FormatDate(repo.upserts[0].Date))
	assert.Equal(t, "08:00", repo.upserts[0].StartTime)
	assert.False(t, repo.upserts[0].IsAvailable)
}
