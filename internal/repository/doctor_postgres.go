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

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) DoctorRepository {
	return &DoctorRepo{db: db}
}

func (r *DoctorRepo) Create(ctx context.Context, dto domain.CreateDoctorProfileDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO doctor_profiles (
			user_id, full_name, specialties, qualifications, bio, experience_years, rating, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		dto.UserID,
		dto.FullName,
		dto.Specialties,
		dto.Qualifications,
		dto.Bio,
		dto.ExperienceYears,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания профиля врача: %w", err)
	}

	return id, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error) {
	return r.getByField(ctx, "id", id)
}

func (r *DoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error) {
	return r.getByField(ctx, "user_id", userID)
}

func (r *DoctorRepo) getByField(ctx context.Context, field string, value interface{}) (*domain.DoctorProfile, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, full_name, specialties, qualifications, bio, experience_years, rating, avatar_url, created_at, updated_at
		FROM doctor_profiles
		WHERE %s = $1
	`, field)

	var profile domain.DoctorProfile
	err := r.db.QueryRow(ctx, query, value).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Specialties,
		&profile.Qualifications,
		&profile.Bio,
		&profile.ExperienceYears,
		&profile.Rating,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения профиля врача: %w", err)
	}

	return &profile, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorProfileDTO) error {
	query := `
		UPDATE doctor_profiles
		SET full_name = COALESCE($1, full_name),
		    specialties = COALESCE($2, specialties),
		    qualifications = COALESCE($3, qualifications),
		    bio = COALESCE($4, bio),
		    experience_years = COALESCE($5, experience_years),
		    updated_at = $6
		WHERE id = $7
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		dto.FullName,
		dto.Specialties,
		dto.Qualifications,
		dto.Bio,
		dto.ExperienceYears,
		time.Now(),
		id,
	)

	if err != nil {
		return fmt.Errorf("ошибка обновления профиля врача: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return errors.New("профиль врача не найден")
	}

	return nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM doctor_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления профиля врача: %w", err)
	}

	return nil
}

func (r *DoctorRepo) List(ctx context.Context, limit, offset int) ([]domain.DoctorProfile, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM doctor_profiles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества врачей: %w", err)
	}

	query := `
		SELECT id, user_id, full_name, specialties, qualifications, bio, experience_years, rating, avatar_url, created_at, updated_at
		FROM doctor_profiles
		ORDER BY rating DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка врачей: %w", err)
	}
	defer rows.Close()

	var profiles []domain.DoctorProfile
	for rows.Next() {
		var profile domain.DoctorProfile
		err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.FullName,
			&profile.Specialties,
			&profile.Qualifications,
			&profile.Bio,
			&profile.ExperienceYears,
			&profile.Rating,
			&profile.AvatarURL,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки профиля врача: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, total, nil
}

func (r *DoctorRepo) UpdateAvatar(ctx context.Context, id int64, avatarURL *string) error {
	_, err := r.db.Exec(ctx, `UPDATE doctor_profiles SET avatar_url = $1, updated_at = $2 WHERE id = $3`, avatarURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления аватара врача: %w", err)
	}

	return nil
}
