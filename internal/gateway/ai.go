package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
)

type CompanionClient struct {
	cfg        config.AIConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewCompanionClient(cfg config.AIConfig, logger *zap.Logger) *CompanionClient {
	return &CompanionClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

func (c *CompanionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: c.cfg.Model,
		Messages: []completionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 1.0,
		MaxTokens:   8192,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации запроса к ИИ-сервису: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса к ИИ-сервису: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса к ИИ-сервису: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ИИ-сервис вернул статус %d", resp.StatusCode)
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ошибка разбора ответа ИИ-сервиса: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", errors.New("пустой ответ ИИ-сервиса")
	}

	return result.Choices[0].Message.Content, nil
}
