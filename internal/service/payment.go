package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/gateway"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
)

type PaymentServiceImpl struct {
	repo        repository.PaymentRepository
	bookingRepo repository.BookingRepository
	gateway     gateway.PaymentGateway
	logger      *zap.Logger
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	gw gateway.PaymentGateway,
	logger *zap.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		gateway:     gw,
		logger:      logger,
	}
}

// CreateOrder создаёт платёжный заказ в шлюзе для ожидающего бронирования.
func (s *PaymentServiceImpl) CreateOrder(ctx context.Context, dto domain.CreatePaymentDTO) (*domain.Payment, error) {
	booking, err := s.bookingRepo.GetByID(ctx, dto.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("бронирование не найдено")
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, errors.New("оплатить можно только ожидающее бронирование")
	}

	appTransID := s.gateway.NewAppTransID()

	order, err := s.gateway.CreateOrder(ctx, gateway.PaymentOrder{
		AppTransID:  appTransID,
		Amount:      dto.Amount,
		Description: fmt.Sprintf("Оплата консультации %s", booking.BookingCode),
		Items: []map[string]interface{}{
			{"booking_id": booking.ID, "amount": dto.Amount},
		},
	})
	if err != nil {
		s.logger.Error("ошибка создания платёжного заказа", zap.String("bookingId", booking.ID), zap.Error(err))
		return nil, errors.New("не удалось создать платёжный заказ")
	}

	if order.ReturnCode != 1 {
		s.logger.Warn("платёжный шлюз отклонил заказ",
			zap.String("bookingId", booking.ID),
			zap.Int("returnCode", order.ReturnCode),
			zap.String("returnMessage", order.ReturnMessage),
		)
		return nil, fmt.Errorf("платёжный шлюз отклонил заказ: %s", order.ReturnMessage)
	}

	payment := domain.Payment{
		BookingID:  booking.ID,
		AppTransID: appTransID,
		Amount:     dto.Amount,
		Status:     domain.PaymentStatusCreated,
		OrderURL:   order.OrderURL,
	}

	id, err := s.repo.Create(ctx, payment)
	if err != nil {
		s.logger.Error("ошибка сохранения платежа", zap.String("appTransId", appTransID), zap.Error(err))
		return nil, errors.New("не удалось сохранить платёж")
	}
	payment.ID = id

	return &payment, nil
}

// HandleCallback обрабатывает обратный вызов шлюза: проверяет подпись,
// помечает платёж оплаченным и переводит бронирование в Booking Success.
func (s *PaymentServiceImpl) HandleCallback(ctx context.Context, callback domain.PaymentCallback) error {
	if !s.gateway.VerifyCallback(callback.Data, callback.Mac) {
		s.logger.Warn("недействительная подпись платёжного обратного вызова")
		return errors.New("недействительная подпись")
	}

	var data domain.PaymentCallbackData
	if err := json.Unmarshal([]byte(callback.Data), &data); err != nil {
		return fmt.Errorf("ошибка разбора данных обратного вызова: %w", err)
	}

	payment, err := s.repo.GetByAppTransID(ctx, data.AppTransID)
	if err != nil {
		return err
	}
	if payment == nil {
		return errors.New("платеж не найден")
	}

	if payment.Status == domain.PaymentStatusPaid {
		// Шлюз может повторять обратный вызов.
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, data.AppTransID, domain.PaymentStatusPaid); err != nil {
		return err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, payment.BookingID, domain.BookingStatusSuccess); err != nil {
		s.logger.Error("платёж получен, но статус бронирования не обновлён",
			zap.String("bookingId", payment.BookingID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("платёж подтверждён",
		zap.String("appTransId", data.AppTransID),
		zap.String("bookingId", payment.BookingID),
	)

	return nil
}

func (s *PaymentServiceImpl) GetByAppTransID(ctx context.Context, appTransID string) (*domain.Payment, error) {
	payment, err := s.repo.GetByAppTransID(ctx, appTransID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors.New("платеж не найден")
	}
	return payment, nil
}
