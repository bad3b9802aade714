package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

type PaymentRepo struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Create(ctx context.Context, payment domain.Payment) (int64, error) {
	var id int64

	query := `
		INSERT INTO payments (booking_id, app_trans_id, amount, status, order_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		payment.BookingID,
		payment.AppTransID,
		payment.Amount,
		payment.Status,
		payment.OrderURL,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания платежа: %w", err)
	}

	return id, nil
}

func (r *PaymentRepo) GetByAppTransID(ctx context.Context, appTransID string) (*domain.Payment, error) {
	query := `
		SELECT id, booking_id, app_trans_id, amount, status, order_url, created_at, updated_at
		FROM payments
		WHERE app_trans_id = $1
	`

	var payment domain.Payment
	err := r.db.QueryRow(ctx, query, appTransID).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.AppTransID,
		&payment.Amount,
		&payment.Status,
		&payment.OrderURL,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения платежа: %w", err)
	}

	return &payment, nil
}

func (r *PaymentRepo) UpdateStatus(ctx context.Context, appTransID string, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status = $1, updated_at = $2 WHERE app_trans_id = $3`

	tag, err := r.db.Exec(ctx, query, status, time.Now(), appTransID)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса платежа: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return errors.New("платеж не найден")
	}

	return nil
}
