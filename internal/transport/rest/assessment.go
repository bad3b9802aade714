package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

// @Summary Сохранить результат теста
// @Description Сохраняет результат опросника DASS-21 с вычисленной степенью тяжести
// @Tags Тестирование
// @Accept json
// @Produce json
// @Param input body domain.CreateTestResultDTO true "Баллы по шкалам"
// @Success 201 {object} domain.TestResult
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /assessments [post]
func (h *Handler) submitTestResult(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}

	var req domain.CreateTestResultDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}
	req.PatientID = patient.ID

	result, err := h.services.Assessment.Submit(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("ошибка сохранения результата теста", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, result)
}

// @Summary Результаты тестов
// @Tags Тестирование
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /assessments [get]
func (h *Handler) getTestResults(c *gin.Context) {
	limit, offset := parsePagination(c)
	filter := domain.TestResultFilter{Limit: limit, Offset: offset}

	// Пациент видит только собственные результаты.
	role, _ := getUserRole(c)
	if role == domain.UserRolePatient {
		patient, ok := h.currentPatient(c)
		if !ok {
			return
		}
		filter.PatientID = &patient.ID
	}

	results, total, err := h.services.Assessment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения результатов тестов", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, results, total, offset/limit+1, limit)
}

// @Summary Статистика по тестам
// @Description Агрегаты по результатам за период (только менеджер)
// @Tags Тестирование
// @Produce json
// @Param from query string true "Начало периода YYYY-MM-DD"
// @Param to query string true "Конец периода YYYY-MM-DD"
// @Success 200 {object} domain.TestStatistics
// @Failure 400 {object} errorResponseBody "Некорректный период"
// @Security ApiKeyAuth
// @Router /assessments/statistics [get]
func (h *Handler) getTestStatistics(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		badRequestResponse(c, "неверный формат даты начала периода")
		return
	}

	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		badRequestResponse(c, "неверный формат даты конца периода")
		return
	}
	to = to.Add(24*time.Hour - time.Second)

	stats, err := h.services.Assessment.Statistics(c.Request.Context(), from, to)
	if err != nil {
		h.logger.Error("ошибка получения статистики тестов", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, stats)
}
