package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

// @Summary Создать медицинскую запись
// @Description Создает запись по пациенту (только врач)
// @Tags Медицинские записи
// @Accept json
// @Produce json
// @Param input body domain.CreateMedicalRecordDTO true "Данные записи"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /records [post]
func (h *Handler) createMedicalRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil || doctor == nil {
		notFoundResponse(c, "профиль врача не найден")
		return
	}

	var req domain.CreateMedicalRecordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Record.Create(c.Request.Context(), doctor.ID, req)
	if err != nil {
		h.logger.Warn("ошибка создания медицинской записи", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Медицинская запись по ID
// @Tags Медицинские записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.MedicalRecord
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /records/{id} [get]
func (h *Handler) getMedicalRecordByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID записи")
		return
	}

	record, err := h.services.Record.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "медицинская запись не найдена")
		return
	}

	successResponse(c, http.StatusOK, record)
}

// @Summary Обновить медицинскую запись
// @Tags Медицинские записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateMedicalRecordDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType
// @Security ApiKeyAuth
// @Router /records/{id} [put]
func (h *Handler) updateMedicalRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID записи")
		return
	}

	var req domain.UpdateMedicalRecordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Record.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка обновления медицинской записи", zap.Int64("recordId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "медицинская запись обновлена")
}

// @Summary Удалить медицинскую запись
// @Tags Медицинские записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} messageResponseType
// @Security ApiKeyAuth
// @Router /records/{id} [delete]
func (h *Handler) deleteMedicalRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID записи")
		return
	}

	if err := h.services.Record.Delete(c.Request.Context(), id); err != nil {
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "медицинская запись удалена")
}

// @Summary Список медицинских записей
// @Tags Медицинские записи
// @Produce json
// @Param patient_id query int false "Фильтр по пациенту"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /records [get]
func (h *Handler) getMedicalRecords(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	limit, offset := parsePagination(c)
	filter := domain.MedicalRecordFilter{Limit: limit, Offset: offset}

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
		if patientIDStr := c.Query("patient_id"); patientIDStr != "" {
			if patientID, err := strconv.ParseInt(patientIDStr, 10, 64); err == nil {
				filter.PatientID = &patientID
				filter.DoctorID = nil
			}
		}
	case domain.UserRoleManager:
		if patientIDStr := c.Query("patient_id"); patientIDStr != "" {
			if patientID, err := strconv.ParseInt(patientIDStr, 10, 64); err == nil {
				filter.PatientID = &patientID
			}
		}
	}

	records, total, err := h.services.Record.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения медицинских записей", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, records, total, offset/limit+1, limit)
}
