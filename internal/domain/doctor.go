package domain

import (
	"time"
)

type DoctorProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	FullName        string    `json:"full_name"`
	Specialties     []string  `json:"specialties"`
	Qualifications  string    `json:"qualifications"`
	Bio             string    `json:"bio"`
	ExperienceYears int       `json:"experience_years"`
	Rating          float64   `json:"rating"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateDoctorProfileDTO struct {
	UserID          int64    `json:"user_id" binding:"required"`
	FullName        string   `json:"full_name" binding:"required"`
	Specialties     []string `json:"specialties"`
	Qualifications  string   `json:"qualifications"`
	Bio             string   `json:"bio"`
	ExperienceYears int      `json:"experience_years"`
}

type UpdateDoctorProfileDTO struct {
	FullName        *string   `json:"full_name,omitempty"`
	Specialties     *[]string `json:"specialties,omitempty"`
	Qualifications  *string   `json:"qualifications,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
}
