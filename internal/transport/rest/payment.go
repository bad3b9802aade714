package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

// @Summary Создать платёжный заказ
// @Description Создает заказ в платёжном шлюзе для ожидающего бронирования
// @Tags Платежи
// @Accept json
// @Produce json
// @Param input body domain.CreatePaymentDTO true "Бронирование и сумма"
// @Success 201 {object} domain.Payment "Платёж со ссылкой на оплату"
// @Failure 400 {object} errorResponseBody "Бронирование не найдено или уже оплачено"
// @Security ApiKeyAuth
// @Router /payments [post]
func (h *Handler) createPaymentOrder(c *gin.Context) {
	var req domain.CreatePaymentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	payment, err := h.services.Payment.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("ошибка создания платёжного заказа", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, payment)
}

// @Summary Обратный вызов платёжного шлюза
// @Description Принимает подписанное уведомление об оплате от шлюза
// @Tags Платежи
// @Accept json
// @Produce json
// @Param input body domain.PaymentCallback true "Подписанные данные"
// @Success 200 {object} map[string]interface{} "Код результата для шлюза"
// @Router /payments/callback [post]
func (h *Handler) paymentCallback(c *gin.Context) {
	var req domain.PaymentCallback
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"return_code": -1, "return_message": "неверный формат данных"})
		return
	}

	if err := h.services.Payment.HandleCallback(c.Request.Context(), req); err != nil {
		h.logger.Warn("ошибка обработки платёжного обратного вызова", zap.Error(err))
		// Шлюз ожидает 200 с кодом результата даже при ошибке.
		c.JSON(http.StatusOK, gin.H{"return_code": -1, "return_message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"return_code": 1, "return_message": "success"})
}

// @Summary Платёж по идентификатору транзакции
// @Tags Платежи
// @Produce json
// @Param appTransId path string true "Идентификатор транзакции шлюза"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} errorResponseBody "Платеж не найден"
// @Security ApiKeyAuth
// @Router /payments/{appTransId} [get]
func (h *Handler) getPaymentByAppTransID(c *gin.Context) {
	payment, err := h.services.Payment.GetByAppTransID(c.Request.Context(), c.Param("appTransId"))
	if err != nil {
		notFoundResponse(c, "платеж не найден")
		return
	}

	successResponse(c, http.StatusOK, payment)
}
