package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
)

type AssessmentServiceImpl struct {
	repo   repository.AssessmentRepository
	logger *zap.Logger
}

func NewAssessmentService(repo repository.AssessmentRepository, logger *zap.Logger) *AssessmentServiceImpl {
	return &AssessmentServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// Submit сохраняет результат опросника DASS-21. Итоговая степень тяжести —
// худшая из трёх шкал (депрессия, тревожность, стресс).
func (s *AssessmentServiceImpl) Submit(ctx context.Context, dto domain.CreateTestResultDTO) (*domain.TestResult, error) {
	if dto.DepressionScore < 0 || dto.AnxietyScore < 0 || dto.StressScore < 0 {
		return nil, errors.New("баллы не могут быть отрицательными")
	}

	result := domain.TestResult{
		PatientID:       dto.PatientID,
		DepressionScore: dto.DepressionScore,
		AnxietyScore:    dto.AnxietyScore,
		StressScore:     dto.StressScore,
		SeverityLevel:   overallSeverity(dto.DepressionScore, dto.AnxietyScore, dto.StressScore),
		Recommendation:  dto.Recommendation,
		TakenAt:         time.Now(),
	}

	id, err := s.repo.Create(ctx, result)
	if err != nil {
		s.logger.Error("ошибка сохранения результата теста", zap.Int64("patientId", dto.PatientID), zap.Error(err))
		return nil, errors.New("не удалось сохранить результат теста")
	}
	result.ID = id

	return &result, nil
}

func (s *AssessmentServiceImpl) List(ctx context.Context, filter domain.TestResultFilter) ([]domain.TestResult, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *AssessmentServiceImpl) Statistics(ctx context.Context, from, to time.Time) (*domain.TestStatistics, error) {
	if to.Before(from) {
		return nil, errors.New("конец периода раньше начала")
	}
	return s.repo.Statistics(ctx, from, to)
}

// Пороговые значения DASS-21 (баллы шкал умножены на два по методике).
func depressionSeverity(score int) domain.SeverityLevel {
	switch {
	case score <= 9:
		return domain.SeverityNormal
	case score <= 13:
		return domain.SeverityMild
	case score <= 20:
		return domain.SeverityModerate
	case score <= 27:
		return domain.SeveritySevere
	default:
		return domain.SeverityExtreme
	}
}

func anxietySeverity(score int) domain.SeverityLevel {
	switch {
	case score <= 7:
		return domain.SeverityNormal
	case score <= 9:
		return domain.SeverityMild
	case score <= 14:
		return domain.SeverityModerate
	case score <= 19:
		return domain.SeveritySevere
	default:
		return domain.SeverityExtreme
	}
}

func stressSeverity(score int) domain.SeverityLevel {
	switch {
	case score <= 14:
		return domain.SeverityNormal
	case score <= 18:
		return domain.SeverityMild
	case score <= 25:
		return domain.SeverityModerate
	case score <= 33:
		return domain.SeveritySevere
	default:
		return domain.SeverityExtreme
	}
}

var severityRank = map[domain.SeverityLevel]int{
	domain.SeverityNormal:   0,
	domain.SeverityMild:     1,
	domain.SeverityModerate: 2,
	domain.SeveritySevere:   3,
	domain.SeverityExtreme:  4,
}

func overallSeverity(depression, anxiety, stress int) domain.SeverityLevel {
	worst := depressionSeverity(depression)
	for _, level := range []domain.SeverityLevel{anxietySeverity(anxiety), stressSeverity(stress)} {
		if severityRank[level] > severityRank[worst] {
			worst = level
		}
	}
	return worst
}
