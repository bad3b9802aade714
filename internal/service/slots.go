package service

import (
	"fmt"
	"time"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/calendar"
)

// Рабочее окно врача, UTC. Обед 12:00-13:00 полностью исключается
// из генерации: слот не может ни начинаться в обеде, ни пересекать его.
const (
	workDayOpenHour  = 8
	workDayCloseHour = 17
	lunchStartHour   = 12
	lunchEndHour     = 13
)

// workDayOpenMinutes — суммарная ёмкость рабочего дня за вычетом обеда.
const workDayOpenMinutes = (workDayCloseHour - workDayOpenHour - (lunchEndHour - lunchStartHour)) * 60

// maxSlotsPerDay возвращает максимальное число слотов заданной длительности,
// умещающееся в рабочий день.
func maxSlotsPerDay(slotDuration int) int {
	return workDayOpenMinutes / slotDuration
}

type slotWindow struct {
	Start time.Time
	End   time.Time
}

// generateDaySlots детерминированно строит упорядоченную последовательность
// слотов на день: курсор идёт слева направо от открытия, обед перепрыгивается
// без счёта слота, неполный слот за границей закрытия отбрасывается.
// Чистая функция: одинаковые аргументы всегда дают одинаковый результат.
func generateDaySlots(date time.Time, slotDuration, slotsPerDay int) []slotWindow {
	day := calendar.DayStart(date)
	open := day.Add(workDayOpenHour * time.Hour)
	close := day.Add(workDayCloseHour * time.Hour)
	lunchStart := day.Add(lunchStartHour * time.Hour)
	lunchEnd := day.Add(lunchEndHour * time.Hour)

	slots := make([]slotWindow, 0, slotsPerDay)
	cursor := open

	for len(slots) < slotsPerDay {
		// Курсор внутри обеда или слот пересёк бы его начало:
		// переносим курсор на конец обеда, слот не засчитывается.
		if !cursor.Before(lunchStart) && cursor.Before(lunchEnd) {
			cursor = lunchEnd
			continue
		}

		end := cursor.Add(time.Duration(slotDuration) * time.Minute)

		if cursor.Before(lunchStart) && end.After(lunchStart) {
			cursor = lunchEnd
			continue
		}

		if end.After(close) {
			break
		}

		slots = append(slots, slotWindow{Start: cursor, End: end})
		cursor = end
	}

	return slots
}

// filterConflicts убирает слоты, пересекающиеся с активными бронированиями
// этого дня. Пересечение полуинтервалов: слот [s,e) конфликтует с
// бронированием [bs,bs+d) при s < bs+d и e > bs, поэтому примыкающие
// встык интервалы конфликтом не считаются.
func filterConflicts(slots []slotWindow, bookings []domain.Booking) []slotWindow {
	if len(bookings) == 0 {
		return slots
	}

	type window struct{ start, end int }
	occupied := make([]window, 0, len(bookings))
	for _, b := range bookings {
		if !b.Status.IsActive() {
			continue
		}
		start, err := parseClockMinutes(b.StartTime)
		if err != nil {
			continue
		}
		occupied = append(occupied, window{start: start, end: start + b.Duration})
	}

	free := make([]slotWindow, 0, len(slots))
	for _, slot := range slots {
		s := slot.Start.Hour()*60 + slot.Start.Minute()
		e := slot.End.Hour()*60 + slot.End.Minute()

		conflict := false
		for _, w := range occupied {
			if s < w.end && e > w.start {
				conflict = true
				break
			}
		}

		if !conflict {
			free = append(free, slot)
		}
	}

	return free
}

// toTimeSlots переводит окна в транспортное представление.
func toTimeSlots(date time.Time, slots []slotWindow) []domain.TimeSlot {
	dayOfWeek := date.UTC().Weekday().String()

	result := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, domain.TimeSlot{
			Status:       domain.TimeSlotStatusAvailable,
			DayOfWeek:    dayOfWeek,
			StartTime:    calendar.FormatTime(slot.Start),
			EndTime:      calendar.FormatTime(slot.End),
			OccupiedInfo: "",
		})
	}

	return result
}

// parseClockMinutes разбирает время вида HH:MM или HH:MM:SS в минуты от полуночи.
func parseClockMinutes(s string) (int, error) {
	var hours, minutes, seconds int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &hours, &minutes, &seconds); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &hours, &minutes); err != nil {
			return 0, fmt.Errorf("некорректное время %q: %w", s, err)
		}
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("некорректное время %q", s)
	}
	return hours*60 + minutes, nil
}
