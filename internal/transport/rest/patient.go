package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

// @Summary Создать профиль пациента
// @Tags Пациенты
// @Accept json
// @Produce json
// @Param input body domain.CreatePatientProfileDTO true "Данные профиля"
// @Success 201 {object} map[string]interface{} "ID созданного профиля"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /patients [post]
func (h *Handler) createPatient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreatePatientProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	// Пациент создает профиль только себе, менеджер - кому угодно.
	role, _ := getUserRole(c)
	if role != domain.UserRoleManager {
		req.UserID = userID
	}

	id, err := h.services.Patient.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("ошибка создания профиля пациента", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Мой профиль пациента
// @Tags Пациенты
// @Produce json
// @Success 200 {object} domain.PatientProfile
// @Failure 404 {object} errorResponseBody "Профиль не найден"
// @Security ApiKeyAuth
// @Router /patients/me [get]
func (h *Handler) getMyPatientProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, "профиль пациента не найден")
		return
	}

	successResponse(c, http.StatusOK, patient)
}

// @Summary Пациент по ID
// @Tags Пациенты
// @Produce json
// @Param id path int true "ID пациента"
// @Success 200 {object} domain.PatientProfile
// @Failure 404 {object} errorResponseBody "Пациент не найден"
// @Security ApiKeyAuth
// @Router /patients/{id} [get]
func (h *Handler) getPatientByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID пациента")
		return
	}

	patient, err := h.services.Patient.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "пациент не найден")
		return
	}

	successResponse(c, http.StatusOK, patient)
}

// @Summary Обновить профиль пациента
// @Tags Пациенты
// @Accept json
// @Produce json
// @Param id path int true "ID пациента"
// @Param input body domain.UpdatePatientProfileDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /patients/{id} [put]
func (h *Handler) updatePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID пациента")
		return
	}

	if !h.canManagePatient(c, id) {
		forbiddenResponse(c)
		return
	}

	var req domain.UpdatePatientProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Patient.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка обновления профиля пациента", zap.Int64("patientId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "профиль пациента обновлен")
}

// @Summary Удалить профиль пациента
// @Tags Пациенты
// @Produce json
// @Param id path int true "ID пациента"
// @Success 200 {object} messageResponseType
// @Security ApiKeyAuth
// @Router /patients/{id} [delete]
func (h *Handler) deletePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID пациента")
		return
	}

	if err := h.services.Patient.Delete(c.Request.Context(), id); err != nil {
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "профиль пациента удален")
}

// @Summary Загрузить аватар пациента
// @Tags Пациенты
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID пациента"
// @Param photo formData file true "Изображение"
// @Success 200 {object} map[string]interface{} "URL загруженного аватара"
// @Security ApiKeyAuth
// @Router /patients/{id}/avatar [post]
func (h *Handler) uploadPatientAvatar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID пациента")
		return
	}

	if !h.canManagePatient(c, id) {
		forbiddenResponse(c)
		return
	}

	data, filename, ok := readUploadedFile(c, "photo")
	if !ok {
		return
	}

	url, err := h.services.Patient.UploadAvatar(c.Request.Context(), id, data, filename)
	if err != nil {
		h.logger.Error("ошибка загрузки аватара пациента", zap.Int64("patientId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, gin.H{"url": url})
}

// @Summary Удалить аватар пациента
// @Tags Пациенты
// @Produce json
// @Param id path int true "ID пациента"
// @Success 200 {object} messageResponseType
// @Security ApiKeyAuth
// @Router /patients/{id}/avatar [delete]
func (h *Handler) deletePatientAvatar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID пациента")
		return
	}

	if !h.canManagePatient(c, id) {
		forbiddenResponse(c)
		return
	}

	if err := h.services.Patient.DeleteAvatar(c.Request.Context(), id); err != nil {
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "аватар удален")
}

// canManagePatient разрешает действие менеджеру или самому пациенту.
func (h *Handler) canManagePatient(c *gin.Context, patientID int64) bool {
	role, err := getUserRole(c)
	if err != nil {
		return false
	}
	if role == domain.UserRoleManager {
		return true
	}

	userID, err := getUserID(c)
	if err != nil {
		return false
	}

	patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
	if err != nil || patient == nil {
		return false
	}

	return patient.ID == patientID
}
