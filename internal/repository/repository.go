package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

type Repositories struct {
	User       UserRepository
	Auth       AuthRepository
	Doctor     DoctorRepository
	Patient    PatientRepository
	Schedule   ScheduleRepository
	Booking    BookingRepository
	Payment    PaymentRepository
	Chat       ChatRepository
	Assessment AssessmentRepository
	Record     RecordRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Auth:       NewAuthRepository(db),
		Doctor:     NewDoctorRepository(db),
		Patient:    NewPatientRepository(db),
		Schedule:   NewScheduleRepository(db),
		Booking:    NewBookingRepository(db),
		Payment:    NewPaymentRepository(db),
		Chat:       NewChatRepository(db),
		Assessment: NewAssessmentRepository(db),
		Record:     NewRecordRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO, passwordHash string) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type DoctorRepository interface {
	Create(ctx context.Context, dto domain.CreateDoctorProfileDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorProfileDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.DoctorProfile, int, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL *string) error
}

type PatientRepository interface {
	Create(ctx context.Context, dto domain.CreatePatientProfileDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.PatientProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.PatientProfile, error)
	Update(ctx context.Context, id int64, dto domain.UpdatePatientProfileDTO) error
	Delete(ctx context.Context, id int64) error
	UpdateAvatar(ctx context.Context, id int64, avatarURL *string) error
}

type ScheduleRepository interface {
	GetConfig(ctx context.Context, doctorID int64) (*domain.ScheduleConfig, error)
	// ReplaceRange атомарно заменяет записи доступности врача в диапазоне дат
	// и обновляет конфигурацию расписания в одной транзакции.
	ReplaceRange(ctx context.Context, doctorID int64, from, to time.Time, days []domain.DayAvailability, cfg domain.ScheduleConfig) error
	GetDayAvailability(ctx context.Context, doctorID int64, date time.Time) (*domain.DayAvailability, error)
	UpsertDayAvailability(ctx context.Context, availability domain.DayAvailability) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
	ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]domain.Booking, error)
	ExistsActiveSlot(ctx context.Context, doctorID int64, date time.Time, startTime string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	ExpirePending(ctx context.Context, olderThan time.Time) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (int64, error)
	GetByAppTransID(ctx context.Context, appTransID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, appTransID string, status domain.PaymentStatus) error
}

type ChatRepository interface {
	CreateSession(ctx context.Context, patientID int64, title string) (*domain.ChatSession, error)
	GetSessionByID(ctx context.Context, id int64) (*domain.ChatSession, error)
	ListSessionsByPatient(ctx context.Context, patientID int64) ([]domain.ChatSession, error)
	AddMessage(ctx context.Context, message domain.ChatMessage) (int64, error)
	ListMessages(ctx context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error)
}

type AssessmentRepository interface {
	Create(ctx context.Context, result domain.TestResult) (int64, error)
	List(ctx context.Context, filter domain.TestResultFilter) ([]domain.TestResult, int, error)
	Statistics(ctx context.Context, from, to time.Time) (*domain.TestStatistics, error)
}

type RecordRepository interface {
	Create(ctx context.Context, doctorID int64, dto domain.CreateMedicalRecordDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error)
	Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error)
}
