package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

func TestSeverityThresholds(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(int) domain.SeverityLevel
		score    int
		expected domain.SeverityLevel
	}{
		{"депрессия норма", depressionSeverity, 9, domain.SeverityNormal},
		{"депрессия лёгкая", depressionSeverity, 10, domain.SeverityMild},
		{"депрессия умеренная", depressionSeverity, 14, domain.SeverityModerate},
		{"депрессия тяжёлая", depressionSeverity, 21, domain.SeveritySevere},
		{"депрессия крайне тяжёлая", depressionSeverity, 28, domain.SeverityExtreme},
		{"тревожность норма", anxietySeverity, 7, domain.SeverityNormal},
		{"тревожность лёгкая", anxietySeverity, 8, domain.SeverityMild},
		{"тревожность умеренная", anxietySeverity, 10, domain.SeverityModerate},
		{"тревожность тяжёлая", anxietySeverity, 15, domain.SeveritySevere},
		{"тревожность крайне тяжёлая", anxietySeverity, 20, domain.SeverityExtreme},
		{"стресс норма", stressSeverity, 14, domain.SeverityNormal},
		{"стресс лёгкий", stressSeverity, 15, domain.SeverityMild},
		{"стресс умеренный", stressSeverity, 19, domain.SeverityModerate},
		{"стресс тяжёлый", stressSeverity, 26, domain.SeveritySevere},
		{"стресс крайне тяжёлый", stressSeverity, 34, domain.SeverityExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.fn(tt.score))
		})
	}
}

func TestOverallSeverity_WorstOfThree(t *testing.T) {
	// Депрессия в норме, тревожность лёгкая, стресс тяжёлый: итог — тяжёлый.
	assert.Equal(t, domain.SeveritySevere, overallSeverity(5, 8, 30))

	// Все шкалы в норме.
	assert.Equal(t, domain.SeverityNormal, overallSeverity(0, 0, 0))

	// Одна крайняя шкала перевешивает остальные.
	assert.Equal(t, domain.SeverityExtreme, overallSeverity(28, 0, 0))
}
