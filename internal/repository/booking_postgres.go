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

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &BookingRepo{db: db}
}

const bookingColumns = `
	id, booking_code, doctor_id, patient_id, date, start_time, duration,
	price, promo_code_id, gift_code_id, status, created_at, updated_at
`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.DoctorID,
		&b.PatientID,
		&b.Date,
		&b.StartTime,
		&b.Duration,
		&b.Price,
		&b.PromoCodeID,
		&b.GiftCodeID,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, booking domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, booking_code, doctor_id, patient_id, date, start_time, duration,
			price, promo_code_id, gift_code_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		booking.ID,
		booking.BookingCode,
		booking.DoctorID,
		booking.PatientID,
		booking.Date,
		booking.StartTime,
		booking.Duration,
		booking.Price,
		booking.PromoCodeID,
		booking.GiftCodeID,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("ошибка создания бронирования: %w", err)
	}

	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения бронирования: %w", err)
	}

	return booking, nil
}

func (r *BookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	countQuery := `SELECT COUNT(*) FROM bookings WHERE 1=1`
	selectQuery := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.DoctorID != nil {
		conditions += fmt.Sprintf(" AND doctor_id = $%d", argPos)
		args = append(args, *filter.DoctorID)
		argPos++
	}

	if filter.PatientID != nil {
		conditions += fmt.Sprintf(" AND patient_id = $%d", argPos)
		args = append(args, *filter.PatientID)
		argPos++
	}

	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY date, start_time LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args[:argPos-1]...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества бронирований: %w", err)
	}

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка бронирований: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки бронирования: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	return bookings, total, nil
}

func (r *BookingRepo) ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE doctor_id = $1 AND date = $2 ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения бронирований на дату: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки бронирования: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	return bookings, nil
}

func (r *BookingRepo) ExistsActiveSlot(ctx context.Context, doctorID int64, date time.Time, startTime string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE doctor_id = $1 AND date = $2 AND start_time = $3
			  AND status IN ($4, $5, $6)
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, doctorID, date, startTime,
		domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusSuccess,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки занятости слота: %w", err)
	}

	return exists, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса бронирования: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return errors.New("бронирование не найдено")
	}

	return nil
}

// ExpirePending отменяет бронирования в статусе Pending, по которым
// оплата так и не поступила.
func (r *BookingRepo) ExpirePending(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `
		UPDATE bookings SET status = $1, updated_at = $2
		WHERE status = $3 AND created_at < $4
	`

	tag, err := r.db.Exec(ctx, query, domain.BookingStatusCancelled, time.Now(), domain.BookingStatusPending, olderThan)
	if err != nil {
		return 0, fmt.Errorf("ошибка отмены просроченных бронирований: %w", err)
	}

	return tag.RowsAffected(), nil
}
