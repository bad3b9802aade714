package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusSuccess   BookingStatus = "Booking Success"
)

// IsActive сообщает, занимает ли бронирование слот в расписании.
// Отменённые бронирования слот не занимают.
func (s BookingStatus) IsActive() bool {
	return s != BookingStatusCancelled
}

type Booking struct {
	ID          string        `json:"id"`
	BookingCode string        `json:"booking_code"`
	DoctorID    int64         `json:"doctor_id"`
	PatientID   int64         `json:"patient_id"`
	Date        time.Time     `json:"date"`
	StartTime   string        `json:"start_time"`
	Duration    int           `json:"duration"`
	Price       float64       `json:"price"`
	PromoCodeID *string       `json:"promo_code_id,omitempty"`
	GiftCodeID  *string       `json:"gift_code_id,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type CreateBookingDTO struct {
	DoctorID    int64   `json:"doctor_id" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"`
	Duration    int     `json:"duration" binding:"required"`
	Price       float64 `json:"price"`
	PromoCodeID *string `json:"promo_code_id"`
	GiftCodeID  *string `json:"gift_code_id"`
}

type BookingFilter struct {
	DoctorID  *int64         `json:"doctor_id"`
	PatientID *int64         `json:"patient_id"`
	Status    *BookingStatus `json:"status"`
	StartDate *time.Time     `json:"start_date"`
	EndDate   *time.Time     `json:"end_date"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}
