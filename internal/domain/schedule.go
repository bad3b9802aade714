package domain

import (
	"fmt"
	"time"
)

type ScheduleErrorKind string

const (
	ScheduleErrInvalidDays         ScheduleErrorKind = "INVALID_DAYS"
	ScheduleErrInvalidSlotCount    ScheduleErrorKind = "INVALID_SLOT_COUNT"
	ScheduleErrInvalidSlotDuration ScheduleErrorKind = "INVALID_SLOT_DURATION"
	ScheduleErrInvalidMonth        ScheduleErrorKind = "INVALID_MONTH"
	ScheduleErrInvalidYear         ScheduleErrorKind = "INVALID_YEAR"
	ScheduleErrCapacityExceeded    ScheduleErrorKind = "CAPACITY_EXCEEDED"
	ScheduleErrPastMonth           ScheduleErrorKind = "PAST_MONTH"
	ScheduleErrPastOrCurrentDate   ScheduleErrorKind = "PAST_OR_CURRENT_DATE"
	ScheduleErrStoreFailure        ScheduleErrorKind = "STORE_FAILURE"
)

// ScheduleError — типизированная ошибка модуля расписания со стабильным
// машинным кодом. MaxSlots заполняется только для CAPACITY_EXCEEDED.
type ScheduleError struct {
	Kind     ScheduleErrorKind
	Message  string
	MaxSlots int
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewScheduleError(kind ScheduleErrorKind, message string) *ScheduleError {
	return &ScheduleError{Kind: kind, Message: message}
}

// ScheduleConfig — конфигурация расписания врача, одна запись на врача.
// Заменяется целиком при каждом создании расписания.
type ScheduleConfig struct {
	DoctorID     int64     `json:"doctor_id"`
	SlotDuration int       `json:"slot_duration"`
	SlotsPerDay  int       `json:"slots_per_day"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DayAvailability — флаг доступности врача на конкретную дату.
// Инвариант: не более одной записи на пару (doctor_id, date).
type DayAvailability struct {
	ID          int64     `json:"id"`
	DoctorID    int64     `json:"doctor_id"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	IsAvailable bool      `json:"is_available"`
}

// TimeSlot — сгенерированный слот приёма. Не хранится, вычисляется
// заново при каждом запросе; занятые слоты отфильтрованы.
type TimeSlot struct {
	Status       string `json:"status"`
	DayOfWeek    string `json:"dayOfWeek"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	OccupiedInfo string `json:"occupiedInfo"`
}

const TimeSlotStatusAvailable = "Available"

type CreateScheduleDTO struct {
	DaysOfWeek   []int `json:"daysOfWeek" binding:"required"`
	SlotsPerDay  int   `json:"slotsPerDay" binding:"required"`
	SlotDuration int   `json:"slotDuration" binding:"required"`
	Month        int   `json:"month" binding:"required"`
	Year         int   `json:"year" binding:"required"`
}

type UpdateAvailabilityDTO struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// DaySchedule — результат запроса расписания на день.
type DaySchedule struct {
	TimeSlots []TimeSlot `json:"timeSlots"`
	Message   string     `json:"message"`
}
