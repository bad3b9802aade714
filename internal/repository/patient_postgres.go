package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/calendar"
)

type PatientRepo struct {
	db *pgxpool.Pool
}

func NewPatientRepository(db *pgxpool.Pool) PatientRepository {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Create(ctx context.Context, dto domain.CreatePatientProfileDTO) (int64, error) {
	var birthDate *time.Time
	if dto.BirthDate != "" {
		parsed, err := calendar.ParseDate(dto.BirthDate)
		if err != nil {
			return 0, fmt.Errorf("неверный формат даты рождения: %w", err)
		}
		birthDate = &parsed
	}

	var id int64

	query := `
		INSERT INTO patient_profiles (
			user_id, full_name, birth_date, gender, phone, emergency_contact, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		dto.UserID,
		dto.FullName,
		birthDate,
		dto.Gender,
		dto.Phone,
		dto.EmergencyContact,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания профиля пациента: %w", err)
	}

	return id, nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id int64) (*domain.PatientProfile, error) {
	return r.getByField(ctx, "id", id)
}

func (r *PatientRepo) GetByUserID(ctx context.Context, userID int64) (*domain.PatientProfile, error) {
	return r.getByField(ctx, "user_id", userID)
}

func (r *PatientRepo) getByField(ctx context.Context, field string, value interface{}) (*domain.PatientProfile, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, full_name, birth_date, gender, phone, emergency_contact, avatar_url, created_at, updated_at
		FROM patient_profiles
		WHERE %s = $1
	`, field)

	var profile domain.PatientProfile
	err := r.db.QueryRow(ctx, query, value).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.BirthDate,
		&profile.Gender,
		&profile.Phone,
		&profile.EmergencyContact,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения профиля пациента: %w", err)
	}

	return &profile, nil
}

func (r *PatientRepo) Update(ctx context.Context, id int64, dto domain.UpdatePatientProfileDTO) error {
	var birthDate *time.Time
	if dto.BirthDate != nil {
		parsed, err := calendar.ParseDate(*dto.BirthDate)
		if err != nil {
			return fmt.Errorf("неверный формат даты рождения: %w", err)
		}
		birthDate = &parsed
	}

	query := `
		UPDATE patient_profiles
		SET full_name = COALESCE($1, full_name),
		    birth_date = COALESCE($2, birth_date),
		    gender = COALESCE($3, gender),
		    phone = COALESCE($4, phone),
		    emergency_contact = COALESCE($5, emergency_contact),
		    updated_at = $6
		WHERE id = $7
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		dto.FullName,
		birthDate,
		dto.Gender,
		dto.Phone,
		dto.EmergencyContact,
		time.Now(),
		id,
	)

	if err != nil {
		return fmt.Errorf("ошибка обновления профиля пациента: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return errors.New("профиль пациента не найден")
	}

	return nil
}

func (r *PatientRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM patient_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления профиля пациента: %w", err)
	}

	return nil
}

func (r *PatientRepo) UpdateAvatar(ctx context.Context, id int64, avatarURL *string) error {
	_, err := r.db.Exec(ctx, `UPDATE patient_profiles SET avatar_url = $1, updated_at = $2 WHERE id = $3`, avatarURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления аватара пациента: %w", err)
	}

	return nil
}
