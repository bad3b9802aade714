package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
)

func testPaymentClient(endpoint string) *PaymentClient {
	return NewPaymentClient(config.PaymentConfig{
		AppID:       "2553",
		Key1:        "key-one",
		Key2:        "key-two",
		Endpoint:    endpoint,
		RedirectURL: "https://example.com/return",
	}, zap.NewNop())
}

func TestNewAppTransID_Format(t *testing.T) {
	client := testPaymentClient("")

	id := client.NewAppTransID()
	assert.Regexp(t, regexp.MustCompile(`^\d{6}_\d+$`), id, "формат должен быть YYMMDD_<число>")
}

func TestCreateOrder_SignsRequest(t *testing.T) {
	var received map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		received = map[string]string{
			"app_id":       query.Get("app_id"),
			"app_trans_id": query.Get("app_trans_id"),
			"amount":       query.Get("amount"),
			"mac":          query.Get("mac"),
			"app_user":     query.Get("app_user"),
			"app_time":     query.Get("app_time"),
			"embed_data":   query.Get("embed_data"),
			"item":         query.Get("item"),
		}
		json.NewEncoder(w).Encode(CreateOrderResponse{ReturnCode: 1, OrderURL: "https://pay.example/order"})
	}))
	defer srv.Close()

	client := testPaymentClient(srv.URL)

	resp, err := client.CreateOrder(context.Background(), PaymentOrder{
		AppTransID:  "250615_123456",
		Amount:      500000,
		Description: "Оплата консультации",
		Items:       []map[string]interface{}{{"booking_id": "b1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ReturnCode)
	assert.Equal(t, "https://pay.example/order", resp.OrderURL)

	require.NotNil(t, received)
	assert.Equal(t, "2553", received["app_id"])
	assert.Equal(t, "250615_123456", received["app_trans_id"])
	assert.Equal(t, "500000", received["amount"])

	// Подпись обязана сходиться с ключом key1 по каноническому порядку полей.
	data := received["app_id"] + "|" + received["app_trans_id"] + "|" + received["app_user"] + "|" +
		received["amount"] + "|" + received["app_time"] + "|" + received["embed_data"] + "|" + received["item"]
	assert.Equal(t, client.sign(data, "key-one"), received["mac"])
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testPaymentClient(srv.URL)

	_, err := client.CreateOrder(context.Background(), PaymentOrder{AppTransID: "250615_1", Amount: 1000})
	assert.Error(t, err)
}

func TestVerifyCallback(t *testing.T) {
	client := testPaymentClient("")

	data := `{"app_trans_id":"250615_123456","amount":500000}`
	mac := client.sign(data, "key-two")

	assert.True(t, client.VerifyCallback(data, mac))
	assert.False(t, client.VerifyCallback(data, "подделка"))
	assert.False(t, client.VerifyCallback(data+"x", mac), "изменённые данные ломают подпись")
}
