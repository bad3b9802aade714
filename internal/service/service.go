package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/gateway"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Payment     gateway.PaymentGateway
	Companion   gateway.CompanionGateway
}

type Services struct {
	User       UserService
	Auth       AuthService
	Doctor     DoctorService
	Patient    PatientService
	Schedule   ScheduleService
	Booking    BookingService
	Payment    PaymentService
	Chat       ChatService
	Assessment AssessmentService
	Record     RecordService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:       NewUserService(deps.Repos.User, deps.Logger),
		Auth:       NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Doctor:     NewDoctorService(deps.Repos.Doctor, deps.Repos.User, deps.FileStorage, deps.Logger),
		Patient:    NewPatientService(deps.Repos.Patient, deps.Repos.User, deps.FileStorage, deps.Logger),
		Schedule:   NewScheduleService(deps.Repos.Schedule, deps.Repos.Booking, deps.Config.Schedule, deps.Logger),
		Booking:    NewBookingService(deps.Repos.Booking, deps.Repos.Schedule, deps.Config.Schedule, deps.Logger),
		Payment:    NewPaymentService(deps.Repos.Payment, deps.Repos.Booking, deps.Payment, deps.Logger),
		Chat:       NewChatService(deps.Repos.Chat, deps.Companion, deps.Logger),
		Assessment: NewAssessmentService(deps.Repos.Assessment, deps.Logger),
		Record:     NewRecordService(deps.Repos.Record, deps.Repos.Patient, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type DoctorService interface {
	Create(ctx context.Context, dto domain.CreateDoctorProfileDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorProfileDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.DoctorProfile, int, error)
	UploadAvatar(ctx context.Context, id int64, photo []byte, filename string) (string, error)
	DeleteAvatar(ctx context.Context, id int64) error
}

type PatientService interface {
	Create(ctx context.Context, dto domain.CreatePatientProfileDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.PatientProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.PatientProfile, error)
	Update(ctx context.Context, id int64, dto domain.UpdatePatientProfileDTO) error
	Delete(ctx context.Context, id int64) error
	UploadAvatar(ctx context.Context, id int64, photo []byte, filename string) (string, error)
	DeleteAvatar(ctx context.Context, id int64) error
}

type ScheduleService interface {
	CreateSchedule(ctx context.Context, doctorID int64, dto domain.CreateScheduleDTO) error
	GetSchedule(ctx context.Context, doctorID int64, date string) (*domain.DaySchedule, error)
	UpdateAvailability(ctx context.Context, doctorID int64, date string, isAvailable bool) error
}

type BookingService interface {
	Create(ctx context.Context, patientID int64, dto domain.CreateBookingDTO) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
	Cancel(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string) error
	ExpireStalePending(ctx context.Context) (int64, error)
}

type PaymentService interface {
	CreateOrder(ctx context.Context, dto domain.CreatePaymentDTO) (*domain.Payment, error)
	HandleCallback(ctx context.Context, callback domain.PaymentCallback) error
	GetByAppTransID(ctx context.Context, appTransID string) (*domain.Payment, error)
}

type ChatService interface {
	CreateSession(ctx context.Context, patientID int64, title string) (*domain.ChatSession, error)
	ListSessions(ctx context.Context, patientID int64) ([]domain.ChatSession, error)
	SendMessage(ctx context.Context, sessionID int64, dto domain.SendMessageDTO) (*domain.ChatReply, error)
	History(ctx context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error)
}

type AssessmentService interface {
	Submit(ctx context.Context, dto domain.CreateTestResultDTO) (*domain.TestResult, error)
	List(ctx context.Context, filter domain.TestResultFilter) ([]domain.TestResult, int, error)
	Statistics(ctx context.Context, from, to time.Time) (*domain.TestStatistics, error)
}

type RecordService interface {
	Create(ctx context.Context, doctorID int64, dto domain.CreateMedicalRecordDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error)
	Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error)
}
