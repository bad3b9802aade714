package domain

import (
	"time"
)

type SeverityLevel string

const (
	SeverityNormal   SeverityLevel = "Normal"
	SeverityMild     SeverityLevel = "Mild"
	SeverityModerate SeverityLevel = "Moderate"
	SeveritySevere   SeverityLevel = "Severe"
	SeverityExtreme  SeverityLevel = "Extremely Severe"
)

// TestResult — результат входного опросника пациента (DASS-21).
type TestResult struct {
	ID              int64         `json:"id"`
	PatientID       int64         `json:"patient_id"`
	DepressionScore int           `json:"depression_score"`
	AnxietyScore    int           `json:"anxiety_score"`
	StressScore     int           `json:"stress_score"`
	SeverityLevel   SeverityLevel `json:"severity_level"`
	Recommendation  string        `json:"recommendation"`
	TakenAt         time.Time     `json:"taken_at"`
}

type CreateTestResultDTO struct {
	PatientID       int64  `json:"patient_id" binding:"required"`
	DepressionScore int    `json:"depression_score"`
	AnxietyScore    int    `json:"anxiety_score"`
	StressScore     int    `json:"stress_score"`
	Recommendation  string `json:"recommendation"`
}

type TestResultFilter struct {
	PatientID *int64     `json:"patient_id"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// TestStatistics — агрегаты по результатам тестов за период.
type TestStatistics struct {
	TotalTests           int            `json:"total_tests"`
	AvgDepressionScore   float64        `json:"avg_depression_score"`
	AvgAnxietyScore      float64        `json:"avg_anxiety_score"`
	AvgStressScore       float64        `json:"avg_stress_score"`
	SeverityDistribution map[string]int `json:"severity_distribution"`
}
