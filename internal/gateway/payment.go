package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
)

type PaymentOrder struct {
	AppTransID  string
	Amount      int64
	Description string
	Items       interface{}
}

type CreateOrderResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	OrderURL      string `json:"order_url"`
	ZpTransToken  string `json:"zp_trans_token"`
}

type PaymentClient struct {
	cfg        config.PaymentConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewPaymentClient(cfg config.PaymentConfig, logger *zap.Logger) *PaymentClient {
	return &PaymentClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// NewAppTransID формирует идентификатор транзакции в формате шлюза:
// YYMMDD_<случайное число>.
func (c *PaymentClient) NewAppTransID() string {
	return fmt.Sprintf("%s_%d", time.Now().Format("060102"), rand.Intn(1000000))
}

func (c *PaymentClient) CreateOrder(ctx context.Context, order PaymentOrder) (*CreateOrderResponse, error) {
	itemJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации позиций заказа: %w", err)
	}

	embedData, err := json.Marshal(map[string]interface{}{
		"redirecturl": c.cfg.RedirectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации embed_data: %w", err)
	}

	appTime := time.Now().UnixMilli()

	params := url.Values{}
	params.Set("app_id", c.cfg.AppID)
	params.Set("app_trans_id", order.AppTransID)
	params.Set("app_user", "mentalcare")
	params.Set("app_time", strconv.FormatInt(appTime, 10))
	params.Set("item", string(itemJSON))
	params.Set("embed_data", string(embedData))
	params.Set("amount", strconv.FormatInt(order.Amount, 10))
	params.Set("description", order.Description)
	params.Set("bank_code", "")

	// Подпись: app_id|app_trans_id|app_user|amount|app_time|embed_data|item
	data := c.cfg.AppID + "|" + order.AppTransID + "|mentalcare|" +
		strconv.FormatInt(order.Amount, 10) + "|" + strconv.FormatInt(appTime, 10) + "|" +
		string(embedData) + "|" + string(itemJSON)
	params.Set("mac", c.sign(data, c.cfg.Key1))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса к платёжному шлюзу: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к платёжному шлюзу: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("платёжный шлюз вернул статус %d", resp.StatusCode)
	}

	var result CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа платёжного шлюза: %w", err)
	}

	c.logger.Info("создан платёжный заказ",
		zap.String("app_trans_id", order.AppTransID),
		zap.Int("return_code", result.ReturnCode),
	)

	return &result, nil
}

// VerifyCallback проверяет подпись обратного вызова по ключу key2.
func (c *PaymentClient) VerifyCallback(data, mac string) bool {
	return hmac.Equal([]byte(c.sign(data, c.cfg.Key2)), []byte(mac))
}

func (c *PaymentClient) sign(data, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
