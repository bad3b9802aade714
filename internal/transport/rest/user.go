package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

// @Summary Текущий пользователь
// @Tags Пользователи
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, "пользователь не найден")
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Пользователь по ID
// @Tags Пользователи
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} domain.User
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *Handler) getUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "пользователь не найден")
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Создать пользователя
// @Description Создает пользователя с произвольной ролью (только менеджер)
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param input body domain.CreateUserDTO true "Данные пользователя"
// @Success 201 {object} map[string]interface{} "ID созданного пользователя"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Security ApiKeyAuth
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var req domain.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if req.Role == "" {
		req.Role = domain.UserRolePatient
	}

	id, err := h.services.User.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("ошибка создания пользователя", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить пользователя
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param input body domain.UpdateUserDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	role, _ := getUserRole(c)
	if userID != id && role != domain.UserRoleManager {
		forbiddenResponse(c)
		return
	}

	var req domain.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.User.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка обновления пользователя", zap.Int64("userId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "пользователь обновлен")
}

// @Summary Удалить пользователя
// @Description Деактивирует пользователя (только менеджер)
// @Tags Пользователи
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} messageResponseType
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.User.Delete(c.Request.Context(), id); err != nil {
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "пользователь удален")
}

// @Summary Список пользователей
// @Tags Пользователи
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} domain.User
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) getUsers(c *gin.Context) {
	limit, offset := parsePagination(c)

	users, err := h.services.User.List(c.Request.Context(), limit, offset)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, users)
}

func parsePagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
