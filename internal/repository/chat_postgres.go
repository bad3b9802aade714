package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

type ChatRepo struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) ChatRepository {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) CreateSession(ctx context.Context, patientID int64, title string) (*domain.ChatSession, error) {
	query := `
		INSERT INTO chat_sessions (patient_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id, patient_id, title, created_at, updated_at
	`

	var session domain.ChatSession
	err := r.db.QueryRow(ctx, query, patientID, title, time.Now()).Scan(
		&session.ID,
		&session.PatientID,
		&session.Title,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("ошибка создания сессии чата: %w", err)
	}

	return &session, nil
}

func (r *ChatRepo) GetSessionByID(ctx context.Context, id int64) (*domain.ChatSession, error) {
	query := `
		SELECT id, patient_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1
	`

	var session domain.ChatSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.PatientID,
		&session.Title,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения сессии чата: %w", err)
	}

	return &session, nil
}

func (r *ChatRepo) ListSessionsByPatient(ctx context.Context, patientID int64) ([]domain.ChatSession, error) {
	query := `
		SELECT id, patient_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE patient_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сессий чата: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ChatSession
	for rows.Next() {
		var session domain.ChatSession
		err := rows.Scan(
			&session.ID,
			&session.PatientID,
			&session.Title,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки сессии чата: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *ChatRepo) AddMessage(ctx context.Context, message domain.ChatMessage) (int64, error) {
	var id int64

	query := `
		INSERT INTO chat_messages (session_id, sender, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, message.SessionID, message.Sender, message.Content, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка сохранения сообщения: %w", err)
	}

	_, err = r.db.Exec(ctx, `UPDATE chat_sessions SET updated_at = $1 WHERE id = $2`, time.Now(), message.SessionID)
	if err != nil {
		return 0, fmt.Errorf("ошибка обновления сессии чата: %w", err)
	}

	return id, nil
}

func (r *ChatRepo) ListMessages(ctx context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error) {
	query := `
		SELECT id, session_id, sender, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, sessionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сообщений: %w", err)
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var message domain.ChatMessage
		err := rows.Scan(
			&message.ID,
			&message.SessionID,
			&message.Sender,
			&message.Content,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки сообщения: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, nil
}
