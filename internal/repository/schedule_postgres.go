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

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) GetConfig(ctx context.Context, doctorID int64) (*domain.ScheduleConfig, error) {
	query := `
		SELECT doctor_id, slot_duration, slots_per_day, updated_at
		FROM doctor_slot_durations
		WHERE doctor_id = $1
	`

	var cfg domain.ScheduleConfig
	err := r.db.QueryRow(ctx, query, doctorID).Scan(
		&cfg.DoctorID,
		&cfg.SlotDuration,
		&cfg.SlotsPerDay,
		&cfg.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения конфигурации расписания: %w", err)
	}

	return &cfg, nil
}

// ReplaceRange выполняет удаление и вставку в одной транзакции:
// неудачная вставка не должна оставить врача без расписания.
func (r *ScheduleRepo) ReplaceRange(ctx context.Context, doctorID int64, from, to time.Time, days []domain.DayAvailability, cfg domain.ScheduleConfig) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM doctor_availabilities
		WHERE doctor_id = $1 AND date >= $2 AND date <= $3
	`, doctorID, from, to)
	if err != nil {
		return fmt.Errorf("ошибка удаления существующего расписания: %w", err)
	}

	if len(days) > 0 {
		batch := &pgx.Batch{}
		for _, day := range days {
			batch.Queue(`
				INSERT INTO doctor_availabilities (doctor_id, date, start_time, is_available)
				VALUES ($1, $2, $3, $4)
			`, day.DoctorID, day.Date, day.StartTime, day.IsAvailable)
		}

		br := tx.SendBatch(ctx, batch)
		for range days {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("ошибка вставки записей доступности: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("ошибка завершения пакетной вставки: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO doctor_slot_durations (doctor_id, slot_duration, slots_per_day, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (doctor_id)
		DO UPDATE SET slot_duration = EXCLUDED.slot_duration,
		              slots_per_day = EXCLUDED.slots_per_day,
		              updated_at = EXCLUDED.updated_at
	`, cfg.DoctorID, cfg.SlotDuration, cfg.SlotsPerDay, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка сохранения конфигурации расписания: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) GetDayAvailability(ctx context.Context, doctorID int64, date time.Time) (*domain.DayAvailability, error) {
	query := `
		SELECT id, doctor_id, date, start_time, is_available
		FROM doctor_availabilities
		WHERE doctor_id = $1 AND date = $2
	`

	var availability domain.DayAvailability
	err := r.db.QueryRow(ctx, query, doctorID, date).Scan(
		&availability.ID,
		&availability.DoctorID,
		&availability.Date,
		&availability.StartTime,
		&availability.IsAvailable,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения доступности на дату: %w", err)
	}

	return &availability, nil
}

func (r *ScheduleRepo) UpsertDayAvailability(ctx context.Context, availability domain.DayAvailability) error {
	query := `
		INSERT INTO doctor_availabilities (doctor_id, date, start_time, is_available)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (doctor_id, date)
		DO UPDATE SET is_available = EXCLUDED.is_available
	`

	_, err := r.db.Exec(
		ctx,
		query,
		availability.DoctorID,
		availability.Date,
		availability.StartTime,
		availability.IsAvailable,
	)

	if err != nil {
		return fmt.Errorf("ошибка обновления доступности: %w", err)
	}

	return nil
}
