package domain

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusCreated  PaymentStatus = "created"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Payment struct {
	ID         int64         `json:"id"`
	BookingID  string        `json:"booking_id"`
	AppTransID string        `json:"app_trans_id"`
	Amount     int64         `json:"amount"`
	Status     PaymentStatus `json:"status"`
	OrderURL   string        `json:"order_url,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type CreatePaymentDTO struct {
	BookingID string `json:"booking_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
}

// PaymentCallback — тело обратного вызова платёжного шлюза.
// Data подписана MAC по ключу key2.
type PaymentCallback struct {
	Data string `json:"data" binding:"required"`
	Mac  string `json:"mac" binding:"required"`
}

type PaymentCallbackData struct {
	AppTransID string `json:"app_trans_id"`
	Amount     int64  `json:"amount"`
}
