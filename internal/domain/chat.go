package domain

import (
	"time"
)

type ChatSender string

const (
	ChatSenderUser      ChatSender = "user"
	ChatSenderCompanion ChatSender = "companion"
)

// ChatSession — сессия переписки пациента с ИИ-компаньоном.
type ChatSession struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID        int64      `json:"id"`
	SessionID int64      `json:"session_id"`
	Sender    ChatSender `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

type SendMessageDTO struct {
	Message  string `json:"message" binding:"required"`
	UserName string `json:"userName"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}
