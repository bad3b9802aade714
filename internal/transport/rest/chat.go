package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

type createChatSessionRequest struct {
	Title string `json:"title"`
}

// @Summary Создать сессию чата
// @Description Создает новую сессию переписки с ИИ-компаньоном
// @Tags Чат
// @Accept json
// @Produce json
// @Param input body createChatSessionRequest true "Заголовок сессии"
// @Success 201 {object} domain.ChatSession
// @Security ApiKeyAuth
// @Router /chat/sessions [post]
func (h *Handler) createChatSession(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}

	var req createChatSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	session, err := h.services.Chat.CreateSession(c.Request.Context(), patient.ID, req.Title)
	if err != nil {
		h.logger.Error("ошибка создания сессии чата", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	createdResponse(c, session)
}

// @Summary Список сессий чата
// @Tags Чат
// @Produce json
// @Success 200 {array} domain.ChatSession
// @Security ApiKeyAuth
// @Router /chat/sessions [get]
func (h *Handler) listChatSessions(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}

	sessions, err := h.services.Chat.ListSessions(c.Request.Context(), patient.ID)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, sessions)
}

// @Summary Отправить сообщение компаньону
// @Description Сохраняет сообщение и возвращает ответ ИИ-компаньона
// @Tags Чат
// @Accept json
// @Produce json
// @Param id path int true "ID сессии"
// @Param input body domain.SendMessageDTO true "Сообщение"
// @Success 200 {object} domain.ChatReply "Ответ компаньона"
// @Failure 404 {object} errorResponseBody "Сессия не найдена"
// @Security ApiKeyAuth
// @Router /chat/sessions/{id}/messages [post]
func (h *Handler) sendChatMessage(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID сессии")
		return
	}

	var req domain.SendMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	reply, err := h.services.Chat.SendMessage(c.Request.Context(), sessionID, req)
	if err != nil {
		h.logger.Warn("ошибка отправки сообщения компаньону", zap.Int64("sessionId", sessionID), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, reply)
}

// @Summary История сообщений
// @Tags Чат
// @Produce json
// @Param id path int true "ID сессии"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} domain.ChatMessage
// @Failure 404 {object} errorResponseBody "Сессия не найдена"
// @Security ApiKeyAuth
// @Router /chat/sessions/{id}/messages [get]
func (h *Handler) getChatHistory(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID сессии")
		return
	}

	limit, offset := parsePagination(c)

	messages, err := h.services.Chat.History(c.Request.Context(), sessionID, limit, offset)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, messages)
}

func (h *Handler) currentPatient(c *gin.Context) (*domain.PatientProfile, bool) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return nil, false
	}

	patient, err := h.services.Patient.GetByUserID(c.Request.Context(), userID)
	if err != nil || patient == nil {
		notFoundResponse(c, "профиль пациента не найден")
		return nil, false
	}

	return patient, true
}
