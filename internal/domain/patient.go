package domain

import (
	"time"
)

type PatientProfile struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	FullName         string     `json:"full_name"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	Gender           string     `json:"gender"`
	Phone            string     `json:"phone"`
	EmergencyContact string     `json:"emergency_contact"`
	AvatarURL        *string    `json:"avatar_url,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type CreatePatientProfileDTO struct {
	UserID           int64  `json:"user_id" binding:"required"`
	FullName         string `json:"full_name" binding:"required"`
	BirthDate        string `json:"birth_date"`
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergency_contact"`
}

type UpdatePatientProfileDTO struct {
	FullName         *string `json:"full_name,omitempty"`
	BirthDate        *string `json:"birth_date,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
}
