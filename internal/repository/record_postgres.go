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

type RecordRepo struct {
	db *pgxpool.Pool
}

func NewRecordRepository(db *pgxpool.Pool) RecordRepository {
	return &RecordRepo{db: db}
}

func (r *RecordRepo) Create(ctx context.Context, doctorID int64, dto domain.CreateMedicalRecordDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO medical_records (patient_id, doctor_id, diagnosis, description, medications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		dto.PatientID,
		doctorID,
		dto.Diagnosis,
		dto.Description,
		dto.Medications,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания медицинской записи: %w", err)
	}

	return id, nil
}

func (r *RecordRepo) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, doctor_id, diagnosis, description, medications, created_at, updated_at
		FROM medical_records
		WHERE id = $1
	`

	var record domain.MedicalRecord
	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.PatientID,
		&record.DoctorID,
		&record.Diagnosis,
		&record.Description,
		&record.Medications,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения медицинской записи: %w", err)
	}

	return &record, nil
}

func (r *RecordRepo) Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error {
	query := `
		UPDATE medical_records
		SET diagnosis = COALESCE($1, diagnosis),
		    description = COALESCE($2, description),
		    medications = COALESCE($3, medications),
		    updated_at = $4
		WHERE id = $5
	`

	tag, err := r.db.Exec(ctx, query, dto.Diagnosis, dto.Description, dto.Medications, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления медицинской записи: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return errors.New("медицинская запись не найдена")
	}

	return nil
}

func (r *RecordRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления медицинской записи: %w", err)
	}

	return nil
}

func (r *RecordRepo) List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error) {
	countQuery := `SELECT COUNT(*) FROM medical_records WHERE 1=1`
	selectQuery := `
		SELECT id, patient_id, doctor_id, diagnosis, description, medications, created_at, updated_at
		FROM medical_records
		WHERE 1=1
	`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.PatientID != nil {
		conditions += fmt.Sprintf(" AND patient_id = $%d", argPos)
		args = append(args, *filter.PatientID)
		argPos++
	}

	if filter.DoctorID != nil {
		conditions += fmt.Sprintf(" AND doctor_id = $%d", argPos)
		args = append(args, *filter.DoctorID)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args[:argPos-1]...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества медицинских записей: %w", err)
	}

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка медицинских записей: %w", err)
	}
	defer rows.Close()

	var records []domain.MedicalRecord
	for rows.Next() {
		var record domain.MedicalRecord
		err := rows.Scan(
			&record.ID,
			&record.PatientID,
			&record.DoctorID,
			&record.Diagnosis,
			&record.Description,
			&record.Medications,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки медицинской записи: %w", err)
		}
		records = append(records, record)
	}

	return records, total, nil
}
