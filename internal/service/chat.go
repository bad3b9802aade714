package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/gateway"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
)

// companionSystemPrompt задаёт роль ИИ-компаньона "Эмо": поддерживающий
// собеседник, не заменяющий врача и не ставящий диагнозов.
const companionSystemPrompt = `Ты — Эмо, тёплый и внимательный собеседник в приложении заботы о ментальном здоровье.
Поддерживай собеседника, задавай мягкие уточняющие вопросы, не ставь диагнозов и не назначай лечение.
При признаках острого кризиса бережно рекомендуй обратиться к специалисту.`

type ChatServiceImpl struct {
	repo      repository.ChatRepository
	companion gateway.CompanionGateway
	logger    *zap.Logger
}

func NewChatService(repo repository.ChatRepository, companion gateway.CompanionGateway, logger *zap.Logger) *ChatServiceImpl {
	return &ChatServiceImpl{
		repo:      repo,
		companion: companion,
		logger:    logger,
	}
}

func (s *ChatServiceImpl) CreateSession(ctx context.Context, patientID int64, title string) (*domain.ChatSession, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Новый разговор"
	}

	session, err := s.repo.CreateSession(ctx, patientID, title)
	if err != nil {
		s.logger.Error("ошибка создания сессии чата", zap.Int64("patientId", patientID), zap.Error(err))
		return nil, errors.New("не удалось создать сессию чата")
	}

	return session, nil
}

func (s *ChatServiceImpl) ListSessions(ctx context.Context, patientID int64) ([]domain.ChatSession, error) {
	return s.repo.ListSessionsByPatient(ctx, patientID)
}

// SendMessage сохраняет сообщение пациента, запрашивает ответ компаньона
// и сохраняет его в ту же сессию. Ответ компаньона персонализируется
// именем пользователя, если оно передано.
func (s *ChatServiceImpl) SendMessage(ctx context.Context, sessionID int64, dto domain.SendMessageDTO) (*domain.ChatReply, error) {
	message := strings.TrimSpace(dto.Message)
	if message == "" {
		return nil, errors.New("пустое сообщение")
	}

	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("сессия чата не найдена")
	}

	if _, err := s.repo.AddMessage(ctx, domain.ChatMessage{
		SessionID: sessionID,
		Sender:    domain.ChatSenderUser,
		Content:   message,
	}); err != nil {
		s.logger.Error("ошибка сохранения сообщения пользователя", zap.Int64("sessionId", sessionID), zap.Error(err))
		return nil, errors.New("не удалось сохранить сообщение")
	}

	prompt := message
	if name := strings.TrimSpace(dto.UserName); name != "" {
		prompt = fmt.Sprintf("Собеседника зовут %s.\n\n%s", name, message)
	}

	reply, err := s.companion.Complete(ctx, companionSystemPrompt, prompt)
	if err != nil {
		s.logger.Error("ошибка получения ответа компаньона", zap.Int64("sessionId", sessionID), zap.Error(err))
		return nil, errors.New("компаньон временно недоступен")
	}

	if _, err := s.repo.AddMessage(ctx, domain.ChatMessage{
		SessionID: sessionID,
		Sender:    domain.ChatSenderCompanion,
		Content:   reply,
	}); err != nil {
		// Ответ уже получен: отдаём его пользователю, потерю истории только логируем.
		s.logger.Warn("ответ компаньона не сохранён в истории", zap.Int64("sessionId", sessionID), zap.Error(err))
	}

	return &domain.ChatReply{Reply: reply}, nil
}

func (s *ChatServiceImpl) History(ctx context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("сессия чата не найдена")
	}

	return s.repo.ListMessages(ctx, sessionID, limit, offset)
}
