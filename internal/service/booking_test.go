package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

func newBookingService(bookings *bookingRepoStub, schedules *scheduleRepoStub) *BookingServiceImpl {
	svc := NewBookingService(bookings, schedules, config.ScheduleConfig{PendingTTL: 30 * time.Minute}, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validBookingDTO() domain.CreateBookingDTO {
	return domain.CreateBookingDTO{
		DoctorID:  1,
		Date:      "2025-06-20",
		StartTime: "09:00",
		Duration:  60,
		Price:     500000,
	}
}

func TestBookingCreate_Success(t *testing.T) {
	bookings := &bookingRepoStub{}
	svc := newBookingService(bookings, &scheduleRepoStub{availability: availableDay("2025-06-20")})

	booking, err := svc.Create(context.Background(), 42, validBookingDTO())
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, int64(42), booking.PatientID)
	assert.True(t, strings.HasPrefix(booking.BookingCode, "BK-"), "код бронирования должен начинаться с BK-")
	assert.NotEmpty(t, booking.ID)

	require.Len(t, bookings.created, 1)
	assert.Equal(t, booking.ID, bookings.created[0].ID)
}

func TestBookingCreate_OccupiedSlot(t *testing.T) {
	bookings := &bookingRepoStub{
		activeSlots: map[string]bool{"2025-06-20 09:00": true},
	}
	svc := newBookingService(bookings, &scheduleRepoStub{availability: availableDay("2025-06-20")})

	_, err := svc.Create(context.Background(), 42, validBookingDTO())
	require.EqualError(t, err, "слот уже занят")
	assert.Empty(t, bookings.created)
}

func TestBookingCreate_PastDate(t *testing.T) {
	bookings := &bookingRepoStub{}
	svc := newBookingService(bookings, &scheduleRepoStub{availability: availableDay("2025-06-10")})

	dto := validBookingDTO()
	dto.Date = "2025-06-10"

	_, err := svc.Create(context.Background(), 42, dto)
	require.EqualError(t, err, "нельзя забронировать прошедшую дату")
	assert.Empty(t, bookings.created)
}

func TestBookingCreate_DayUnavailable(t *testing.T) {
	bookings := &bookingRepoStub{}
	schedules := &scheduleRepoStub{
		availability: map[string]*domain.DayAvailability{
			"2025-06-20": {DoctorID: 1, IsAvailable: false},
		},
	}
	svc := newBookingService(bookings, schedules)

	_, err := svc.Create(context.Background(), 42, validBookingDTO())
	require.EqualError(t, err, "врач недоступен в этот день")
}

func TestBookingCreate_Validation(t *testing.T) {
	svc := newBookingService(&bookingRepoStub{}, &scheduleRepoStub{availability: availableDay("2025-06-20")})

	tests := []struct {
		name   string
		mutate func(*domain.CreateBookingDTO)
	}{
		{"мусор вместо даты", func(d *domain.CreateBookingDTO) { d.Date = "не дата" }},
		{"мусор вместо времени", func(d *domain.CreateBookingDTO) { d.StartTime = "утром" }},
		{"нулевая длительность", func(d *domain.CreateBookingDTO) { d.Duration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := validBookingDTO()
			tt.mutate(&dto)

			_, err := svc.Create(context.Background(), 42, dto)
			assert.Error(t, err)
		})
	}
}

func TestBookingCancel(t *testing.T) {
	bookings := &bookingRepoStub{
		bookings: []domain.Booking{
			{ID: "b1", Status: domain.BookingStatusPending},
			{ID: "b2", Status: domain.BookingStatusCancelled},
		},
	}
	svc := newBookingService(bookings, &scheduleRepoStub{})

	require.NoError(t, svc.Cancel(context.Background(), "b1"))
	assert.Equal(t, domain.BookingStatusCancelled, bookings.statuses["b1"])

	err := svc.Cancel(context.Background(), "b2")
	require.EqualError(t, err, "бронирование уже отменено")
}

func TestBookingConfirm(t *testing.T) {
	bookings := &bookingRepoStub{
		bookings: []domain.Booking{
			{ID: "b1", Status: domain.BookingStatusPending},
			{ID: "b2", Status: domain.BookingStatusConfirmed},
		},
	}
	svc := newBookingService(bookings, &scheduleRepoStub{})

	require.NoError(t, svc.Confirm(context.Background(), "b1"))
	assert.Equal(t, domain.BookingStatusConfirmed, bookings.statuses["b1"])

	err := svc.Confirm(context.Background(), "b2")
	require.EqualError(t, err, "подтвердить можно только ожидающее бронирование")
}

func TestExpireStalePending(t *testing.T) {
	bookings := &bookingRepoStub{expired: 3}
	svc := newBookingService(bookings, &scheduleRepoStub{})

	count, err := svc.ExpireStalePending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), count)
	assert.Equal(t, fixedNow.Add(-30*time.Minute), bookings.expiredFrom, "порог должен отстоять от текущего времени на TTL")
}
