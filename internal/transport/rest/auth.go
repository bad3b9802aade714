package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary Регистрация
// @Description Регистрирует нового пациента
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body domain.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} map[string]interface{} "ID созданного пользователя"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	userID, err := h.services.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("ошибка регистрации", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": userID})
}

// @Summary Вход
// @Description Аутентифицирует пользователя и выдает пару токенов
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Учетные данные"
// @Success 200 {object} domain.Tokens "Пара токенов"
// @Failure 401 {object} errorResponseBody "Неверные учетные данные"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	tokens, err := h.services.Auth.Login(c.Request.Context(), req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Обновление токенов
// @Description Выдает новую пару токенов по refresh token
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body refreshRequest true "Refresh token"
// @Success 200 {object} domain.Tokens "Новая пара токенов"
// @Failure 401 {object} errorResponseBody "Недействительный refresh token"
// @Router /auth/refresh [post]
func (h *Handler) refreshTokens(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	tokens, err := h.services.Auth.RefreshTokens(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Выход
// @Description Завершает сессию по refresh token
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body refreshRequest true "Refresh token"
// @Success 200 {object} messageResponseType "Сессия завершена"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "сессия завершена")
}
