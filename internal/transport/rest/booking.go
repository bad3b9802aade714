package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

// @Summary Создать бронирование
// @Description Создает бронирование слота со статусом Pending
// @Tags Бронирования
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Параметры бронирования"
// @Success 201 {object} domain.Booking "Созданное бронирование"
// @Failure 400 {object} errorResponseBody "Слот занят или данные некорректны"
// @Security ApiKeyAuth
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
	if err != nil || patient == nil {
		notFoundResponse(c, "профиль пациента не найден")
		return
	}

	var req domain.CreateBookingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	booking, err := h.services.Booking.Create(c.Request.Context(), patient.ID, req)
	if err != nil {
		h.logger.Warn("ошибка создания бронирования", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, booking)
}

// @Summary Список бронирований
// @Tags Бронирования
// @Produce json
// @Param doctor_id query int false "Фильтр по врачу"
// @Param status query string false "Фильтр по статусу"
// @Param date_from query string false "Начало периода YYYY-MM-DD"
// @Param date_to query string false "Конец периода YYYY-MM-DD"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /bookings [get]
func (h *Handler) getBookings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	limit, offset := parsePagination(c)
	filter := domain.BookingFilter{Limit: limit, Offset: offset}

	// Пациент видит только свои бронирования, врач - свои,
	// менеджер - любые по фильтрам.
	role, _ := getUserRole(c)
	switch role {
	case domain.UserRolePatient:
		patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
		if err != nil || patient == nil {
			notFoundResponse(c, "профиль пациента не найден")
			return
		}
		filter.PatientID = &patient.ID
	case domain.UserRoleDoctor:
		doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
		if err != nil || doctor == nil {
			notFoundResponse(c, "профиль врача не найден")
			return
		}
		filter.DoctorID = &doctor.ID
	case domain.UserRoleManager:
		if doctorIDStr := c.Query("doctor_id"); doctorIDStr != "" {
			if doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64); err == nil {
				filter.DoctorID = &doctorID
			}
		}
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.BookingStatus(statusStr)
		filter.Status = &status
	}

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		if parsed, err := time.Parse("2006-01-02", dateFrom); err == nil {
			filter.StartDate = &parsed
		}
	}

	if dateTo := c.Query("date_to"); dateTo != "" {
		if parsed, err := time.Parse("2006-01-02", dateTo); err == nil {
			filter.EndDate = &parsed
		}
	}

	bookings, total, err := h.services.Booking.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения бронирований", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, bookings, total, offset/limit+1, limit)
}

// @Summary Бронирование по ID
// @Tags Бронирования
// @Produce json
// @Param id path string true "ID бронирования"
// @Success 200 {object} domain.Booking
// @Failure 404 {object} errorResponseBody "Бронирование не найдено"
// @Security ApiKeyAuth
// @Router /bookings/{id} [get]
func (h *Handler) getBookingByID(c *gin.Context) {
	booking, err := h.services.Booking.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, "бронирование не найдено")
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Отменить бронирование
// @Description Переводит бронирование в статус Cancelled, слот освобождается
// @Tags Бронирования
// @Produce json
// @Param id path string true "ID бронирования"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Бронирование уже отменено"
// @Security ApiKeyAuth
// @Router /bookings/{id} [delete]
func (h *Handler) cancelBooking(c *gin.Context) {
	if err := h.services.Booking.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "бронирование отменено")
}

// @Summary Подтвердить бронирование
// @Tags Бронирования
// @Produce json
// @Param id path string true "ID бронирования"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Бронирование не в статусе Pending"
// @Security ApiKeyAuth
// @Router /bookings/{id}/confirm [put]
func (h *Handler) confirmBooking(c *gin.Context) {
	if err := h.services.Booking.Confirm(c.Request.Context(), c.Param("id")); err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "бронирование подтверждено")
}
