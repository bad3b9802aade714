package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

// @Summary Создать расписание на месяц
// @Description Пересоздает доступность врача на указанный месяц по дням недели
// @Tags Расписание
// @Accept json
// @Produce json
// @Param doctorId path int true "ID врача"
// @Param input body domain.CreateScheduleDTO true "Параметры расписания"
// @Success 200 {object} messageResponseType "Расписание создано"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{doctorId}/schedule [post]
func (h *Handler) createSchedule(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID врача")
		return
	}

	if !h.canManageDoctor(c, doctorID) {
		forbiddenResponse(c, "расписание может менять только сам врач")
		return
	}

	var req domain.CreateScheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Schedule.CreateSchedule(c.Request.Context(), doctorID, req); err != nil {
		h.respondScheduleError(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "расписание создано")
}

// @Summary Слоты врача на день
// @Description Возвращает свободные слоты врача на дату с учетом бронирований
// @Tags Расписание
// @Produce json
// @Param doctorId path int true "ID врача"
// @Param day path string true "Дата в формате YYYY-MM-DD"
// @Success 200 {object} domain.DaySchedule "Слоты и статусное сообщение"
// @Failure 400 {object} errorResponseBody "Некорректная дата"
// @Router /doctors/{doctorId}/{day} [get]
func (h *Handler) getDaySchedule(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID врача")
		return
	}

	schedule, err := h.services.Schedule.GetSchedule(c.Request.Context(), doctorID, c.Param("day"))
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// @Summary Изменить доступность на дату
// @Description Включает или выключает доступность врача на будущую дату
// @Tags Расписание
// @Accept json
// @Produce json
// @Param doctorId path int true "ID врача"
// @Param day path string true "Дата в формате YYYY-MM-DD"
// @Param input body domain.UpdateAvailabilityDTO true "Флаг доступности"
// @Success 200 {object} map[string]interface{} "Результат с флагом доступности"
// @Failure 400 {object} errorResponseBody "Прошедшая или текущая дата"
// @Security ApiKeyAuth
// @Router /doctors/{doctorId}/{day} [put]
func (h *Handler) updateAvailability(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID врача")
		return
	}

	if !h.canManageDoctor(c, doctorID) {
		forbiddenResponse(c, "доступность может менять только сам врач")
		return
	}

	var req domain.UpdateAvailabilityDTO
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Schedule.UpdateAvailability(c.Request.Context(), doctorID, c.Param("day"), *req.IsAvailable); err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "доступность обновлена",
		"isAvailable": *req.IsAvailable,
	})
}

// respondScheduleError переводит типизированные ошибки расписания в HTTP:
// ошибки валидации - 400 с машинным кодом, сбои хранилища - 500.
func (h *Handler) respondScheduleError(c *gin.Context, err error) {
	var schedErr *domain.ScheduleError
	if !errors.As(err, &schedErr) {
		h.logger.Error("ошибка модуля расписания", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	if schedErr.Kind == domain.ScheduleErrStoreFailure {
		h.logger.Error("сбой хранилища расписания", zap.Error(schedErr))
		errorResponseWithCode(c, http.StatusInternalServerError, schedErr.Message, string(schedErr.Kind))
		return
	}

	errorResponseWithCode(c, http.StatusBadRequest, schedErr.Message, string(schedErr.Kind))
}
