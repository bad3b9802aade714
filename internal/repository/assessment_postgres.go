package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

type AssessmentRepo struct {
	db *pgxpool.Pool
}

func NewAssessmentRepository(db *pgxpool.Pool) AssessmentRepository {
	return &AssessmentRepo{db: db}
}

func (r *AssessmentRepo) Create(ctx context.Context, result domain.TestResult) (int64, error) {
	var id int64

	query := `
		INSERT INTO test_results (
			patient_id, depression_score, anxiety_score, stress_score, severity_level, recommendation, taken_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		result.PatientID,
		result.DepressionScore,
		result.AnxietyScore,
		result.StressScore,
		result.SeverityLevel,
		result.Recommendation,
		result.TakenAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка сохранения результата теста: %w", err)
	}

	return id, nil
}

func (r *AssessmentRepo) List(ctx context.Context, filter domain.TestResultFilter) ([]domain.TestResult, int, error) {
	countQuery := `SELECT COUNT(*) FROM test_results WHERE 1=1`
	selectQuery := `
		SELECT id, patient_id, depression_score, anxiety_score, stress_score, severity_level, recommendation, taken_at
		FROM test_results
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

	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND taken_at >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND taken_at <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY taken_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args[:argPos-1]...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества результатов: %w", err)
	}

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка результатов: %w", err)
	}
	defer rows.Close()

	var results []domain.TestResult
	for rows.Next() {
		var result domain.TestResult
		err := rows.Scan(
			&result.ID,
			&result.PatientID,
			&result.DepressionScore,
			&result.AnxietyScore,
			&result.StressScore,
			&result.SeverityLevel,
			&result.Recommendation,
			&result.TakenAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки результата: %w", err)
		}
		results = append(results, result)
	}

	return results, total, nil
}

func (r *AssessmentRepo) Statistics(ctx context.Context, from, to time.Time) (*domain.TestStatistics, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(depression_score), 0),
		       COALESCE(AVG(anxiety_score), 0),
		       COALESCE(AVG(stress_score), 0)
		FROM test_results
		WHERE taken_at >= $1 AND taken_at <= $2
	`

	stats := &domain.TestStatistics{
		SeverityDistribution: make(map[string]int),
	}

	err := r.db.QueryRow(ctx, query, from, to).Scan(
		&stats.TotalTests,
		&stats.AvgDepressionScore,
		&stats.AvgAnxietyScore,
		&stats.AvgStressScore,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики тестов: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT severity_level, COUNT(*)
		FROM test_results
		WHERE taken_at >= $1 AND taken_at <= $2
		GROUP BY severity_level
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения распределения тяжести: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("ошибка сканирования распределения тяжести: %w", err)
		}
		stats.SeverityDistribution[level] = count
	}

	return stats, nil
}
