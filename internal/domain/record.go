package domain

import (
	"time"
)

// MedicalRecord — медицинская запись, ведётся врачом по пациенту.
type MedicalRecord struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	Diagnosis   string    `json:"diagnosis"`
	Description string    `json:"description"`
	Medications []string  `json:"medications"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateMedicalRecordDTO struct {
	PatientID   int64    `json:"patient_id" binding:"required"`
	Diagnosis   string   `json:"diagnosis" binding:"required"`
	Description string   `json:"description"`
	Medications []string `json:"medications"`
}

type UpdateMedicalRecordDTO struct {
	Diagnosis   *string   `json:"diagnosis,omitempty"`
	Description *string   `json:"description,omitempty"`
	Medications *[]string `json:"medications,omitempty"`
}

type MedicalRecordFilter struct {
	PatientID *int64 `json:"patient_id"`
	DoctorID  *int64 `json:"doctor_id"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}
