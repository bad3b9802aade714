package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

// @Summary Список врачей
// @Tags Врачи
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse
// @Router /doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	limit, offset := parsePagination(c)

	doctors, total, err := h.services.Doctor.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("ошибка получения списка врачей", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, doctors, total, offset/limit+1, limit)
}

// @Summary Врач по ID
// @Tags Врачи
// @Produce json
// @Param doctorId path int true "ID врача"
// @Success 200 {object} domain.DoctorProfile
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{doctorId} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID врача")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "врач не найден")
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Создать профиль врача
// @Description Создает профиль врача (только менеджер)
// @Tags Врачи
// @Accept json
// @Produce json
// @Param input body domain.CreateDoctorProfileDTO true "Данные профиля"
// @Success 201 {object} map[string]interface{} "ID созданного профиля"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /doctors [post]
func (h *Handler) createDoctor(c *gin.Context) {
	var req domain.CreateDoctorProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Doctor.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("ошибка создания профиля врача", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить профиль врача
// @Tags Врачи
// @Accept json
// @Produce json
// @Param doctorId path int true "ID врача"
// @Param input body domain.UpdateDoctorProfileDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{doctorId} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID врача")
		return
	}

	if !h.canManageDoctor(c, id) {
		forbiddenResponse(c)
		return
	}

	var req domain.UpdateDoctorProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Doctor.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка обновления профиля врача", zap.Int64("doctorId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "профиль врача обновлен")
}

// @Summary Удалить профиль врача
// @Tags Врачи
// @Produce json
// @Param doctorId path int true "ID врача"
// @Success 200 {object} messageResponseType
// @Security ApiKeyAuth
// @Router /doctors/{doctorId} [delete]
func (h *Handler) deleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID врача")
		return
	}

	if err := h.services.Doctor.Delete(c.Request.Context(), id); err != nil {
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "профиль врача удален")
}

// @Summary Загрузить аватар врача
// @Tags Врачи
// @Accept multipart/form-data
// @Produce json
// @Param doctorId path int true "ID врача"
// @Param photo formData file true "Изображение"
// @Success 200 {object} map[string]interface{} "URL загруженного аватара"
// @Security ApiKeyAuth
// @Router /doctors/{doctorId}/avatar [post]
func (h *Handler) uploadDoctorAvatar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID врача")
		return
	}

	if !h.canManageDoctor(c, id) {
		forbiddenResponse(c)
		return
	}

	data, filename, ok := readUploadedFile(c, "photo")
	if !ok {
		return
	}

	url, err := h.services.Doctor.UploadAvatar(c.Request.Context(), id, data, filename)
	if err != nil {
		h.logger.Error("ошибка загрузки аватара врача", zap.Int64("doctorId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, gin.H{"url": url})
}

// @Summary Удалить аватар врача
// @Tags Врачи
// @Produce json
// @Param doctorId path int true "ID врача"
// @Success 200 {object} messageResponseType
// @Security ApiKeyAuth
// @Router /doctors/{doctorId}/avatar [delete]
func (h *Handler) deleteDoctorAvatar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID врача")
		return
	}

	if !h.canManageDoctor(c, id) {
		forbiddenResponse(c)
		return
	}

	if err := h.services.Doctor.DeleteAvatar(c.Request.Context(), id); err != nil {
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "аватар удален")
}

// canManageDoctor разрешает действие менеджеру или самому врачу.
func (h *Handler) canManageDoctor(c *gin.Context, doctorID int64) bool {
	role, err := getUserRole(c)
	if err != nil {
		return false
	}
	if role == domain.UserRoleManager {
		return true
	}
	if role != domain.UserRoleDoctor {
		return false
	}

	userID, err := getUserID(c)
	if err != nil {
		return false
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil || doctor == nil {
		return false
	}

	return doctor.ID == doctorID
}

func readUploadedFile(c *gin.Context, field string) ([]byte, string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		badRequestResponse(c, "файл не передан")
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequestResponse(c, "не удалось открыть файл")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequestResponse(c, "не удалось прочитать файл")
		return nil, "", false
	}

	return data, fileHeader.Filename, true
}
