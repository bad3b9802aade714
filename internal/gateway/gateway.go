package gateway

import (
	"context"
)

// PaymentGateway — клиент платёжного шлюза (ZaloPay-совместимый протокол).
type PaymentGateway interface {
	CreateOrder(ctx context.Context, order PaymentOrder) (*CreateOrderResponse, error)
	VerifyCallback(data, mac string) bool
	NewAppTransID() string
}

// CompanionGateway — клиент сервиса генеративных ответов ИИ-компаньона.
type CompanionGateway interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
