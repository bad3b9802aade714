package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/calendar"
)

func testDay(t *testing.T) time.Time {
	t.Helper()
	day, err := calendar.ParseDate("2025-06-20")
	require.NoError(t, err)
	return day
}

func slotTimes(slots []slotWindow) [][2]string {
	result := make([][2]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, [2]string{calendar.FormatTime(s.Start), calendar.FormatTime(s.End)})
	}
	return result
}

func TestGenerateDaySlots_FullDayHourSlots(t *testing.T) {
	slots := generateDaySlots(testDay(t), 60, 8)

	expected := [][2]string{
		{"08:00", "09:00"},
		{"09:00", "10:00"},
		{"10:00", "11:00"},
		{"11:00", "12:00"},
		{"13:00", "14:00"},
		{"14:00", "15:00"},
		{"15:00", "16:00"},
		{"16:00", "17:00"},
	}

	assert.Equal(t, expected, slotTimes(slots), "день должен распадаться ровно на 8 часовых слотов с пропуском обеда")
}

func TestGenerateDaySlots_BoundedBySlotsPerDay(t *testing.T) {
	slots := generateDaySlots(testDay(t), 60, 3)

	require.Len(t, slots, 3)
	assert.Equal(t, "11:00", calendar.FormatTime(slots[2].End))
}

func TestGenerateDaySlots_PartialSlotDiscarded(t *testing.T) {
	// 90-минутные слоты: 11:00-12:30 пересек бы обед, 16:00-17:30 вышел бы
	// за закрытие. Оба отбрасываются.
	slots := generateDaySlots(testDay(t), 90, 10)

	expected := [][2]string{
		{"08:00", "09:30"},
		{"09:30", "11:00"},
		{"13:00", "14:30"},
		{"14:30", "16:00"},
	}

	assert.Equal(t, expected, slotTimes(slots))
}

func TestGenerateDaySlots_Invariants(t *testing.T) {
	day := testDay(t)
	lunchStart := day.Add(lunchStartHour * time.Hour)
	lunchEnd := day.Add(lunchEndHour * time.Hour)
	open := day.Add(workDayOpenHour * time.Hour)
	close := day.Add(workDayCloseHour * time.Hour)

	for _, duration := range []int{15, 30, 45, 60, 90, 120} {
		slots := generateDaySlots(day, duration, 100)
		require.NotEmpty(t, slots, "длительность %d", duration)

		for i, s := range slots {
			assert.False(t, s.Start.Before(open), "слот начинается до открытия: %v", s)
			assert.False(t, s.End.After(close), "слот выходит за закрытие: %v", s)
			assert.False(t, s.Start.Before(lunchEnd) && s.End.After(lunchStart),
				"слот пересекает обед: %v (длительность %d)", s, duration)
			if i > 0 {
				assert.False(t, s.Start.Before(slots[i-1].End), "слоты пересекаются: %v и %v", slots[i-1], s)
			}
		}
	}
}

func TestGenerateDaySlots_Deterministic(t *testing.T) {
	first := generateDaySlots(testDay(t), 45, 6)
	second := generateDaySlots(testDay(t), 45, 6)

	assert.Equal(t, first, second)
}

func TestFilterConflicts_RemovesOverlapping(t *testing.T) {
	slots := generateDaySlots(testDay(t), 60, 8)

	bookings := []domain.Booking{
		{StartTime: "09:00:00", Duration: 60, Status: domain.BookingStatusPending},
	}

	free := filterConflicts(slots, bookings)

	require.Len(t, free, 7)
	for _, s := range free {
		assert.NotEqual(t, "09:00", calendar.FormatTime(s.Start))
	}
}

func TestFilterConflicts_CancelledDoesNotOccupy(t *testing.T) {
	slots := generateDaySlots(testDay(t), 60, 8)

	bookings := []domain.Booking{
		{StartTime: "09:00:00", Duration: 60, Status: domain.BookingStatusCancelled},
	}

	free := filterConflicts(slots, bookings)

	assert.Len(t, free, 8, "отмененное бронирование не должно занимать слот")
}

func TestFilterConflicts_AdjacentIsNotConflict(t *testing.T) {
	slots := generateDaySlots(testDay(t), 60, 8)

	// Бронирование 10:00-11:00: слоты 09:00-10:00 и 11:00-12:00 примыкают
	// встык и конфликтом не считаются.
	bookings := []domain.Booking{
		{StartTime: "10:00:00", Duration: 60, Status: domain.BookingStatusConfirmed},
	}

	free := filterConflicts(slots, bookings)

	times := slotTimes(free)
	assert.Contains(t, times, [2]string{"09:00", "10:00"})
	assert.Contains(t, times, [2]string{"11:00", "12:00"})
	assert.NotContains(t, times, [2]string{"10:00", "11:00"})
}

func TestFilterConflicts_PartialOverlap(t *testing.T) {
	slots := generateDaySlots(testDay(t), 60, 8)

	// Бронирование 09:30-10:30 задевает два соседних слота.
	bookings := []domain.Booking{
		{StartTime: "09:30:00", Duration: 60, Status: domain.BookingStatusConfirmed},
	}

	free := filterConflicts(slots, bookings)

	times := slotTimes(free)
	assert.NotContains(t, times, [2]string{"09:00", "10:00"})
	assert.NotContains(t, times, [2]string{"10:00", "11:00"})
	assert.Len(t, free, 6)
}

func TestMaxSlotsPerDay(t *testing.T) {
	assert.Equal(t, 8, maxSlotsPerDay(60))
	assert.Equal(t, 16, maxSlotsPerDay(30))
	assert.Equal(t, 5, maxSlotsPerDay(90))
	assert.Equal(t, 4, maxSlotsPerDay(120))
}

func TestParseClockMinutes(t *testing.T) {
	minutes, err := parseClockMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = parseClockMinutes("09:30:00")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = parseClockMinutes("abc")
	assert.Error(t, err)
}
