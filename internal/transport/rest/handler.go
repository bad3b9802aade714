package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)

			manager := users.Group("/")
			manager.Use(h.managerMiddleware())
			{
				manager.POST("/", h.createUser)
				manager.GET("/", h.getUsers)
				manager.DELETE("/:id", h.deleteUser)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("/", h.getDoctors)
			doctors.GET("/:doctorId", h.getDoctorByID)

			// Расписание врача: просмотр слотов открыт всем,
			// создание и правка доступности - только врачу.
			doctors.GET("/:doctorId/:day", h.getDaySchedule)

			auth := doctors.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.managerMiddleware(), h.createDoctor)
				auth.PUT("/:doctorId", h.updateDoctor)
				auth.DELETE("/:doctorId", h.managerMiddleware(), h.deleteDoctor)

				auth.POST("/:doctorId/schedule", h.doctorMiddleware(), h.createSchedule)
				auth.PUT("/:doctorId/:day", h.doctorMiddleware(), h.updateAvailability)

				auth.POST("/:doctorId/avatar", h.uploadDoctorAvatar)
				auth.DELETE("/:doctorId/avatar", h.deleteDoctorAvatar)
			}
		}

		patients := api.Group("/patients")
		patients.Use(h.authMiddleware())
		{
			patients.POST("/", h.createPatient)
			patients.GET("/me", h.getMyPatientProfile)
			patients.GET("/:id", h.getPatientByID)
			patients.PUT("/:id", h.updatePatient)
			patients.DELETE("/:id", h.managerMiddleware(), h.deletePatient)

			patients.POST("/:id/avatar", h.uploadPatientAvatar)
			patients.DELETE("/:id/avatar", h.deletePatientAvatar)
		}

		bookings := api.Group("/bookings")
		bookings.Use(h.authMiddleware())
		{
			bookings.POST("/", h.createBooking)
			bookings.GET("/", h.getBookings)
			bookings.GET("/:id", h.getBookingByID)
			bookings.DELETE("/:id", h.cancelBooking)
			bookings.PUT("/:id/confirm", h.confirmBooking)
		}

		payments := api.Group("/payments")
		{
			// Обратный вызов шлюза аутентифицируется подписью, не токеном.
			payments.POST("/callback", h.paymentCallback)

			auth := payments.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createPaymentOrder)
				auth.GET("/:appTransId", h.getPaymentByAppTransID)
			}
		}

		chat := api.Group("/chat")
		chat.Use(h.authMiddleware())
		{
			chat.POST("/sessions", h.createChatSession)
			chat.GET("/sessions", h.listChatSessions)
			chat.GET("/sessions/:id/messages", h.getChatHistory)
			chat.POST("/sessions/:id/messages", h.sendChatMessage)
		}

		assessments := api.Group("/assessments")
		assessments.Use(h.authMiddleware())
		{
			assessments.POST("/", h.submitTestResult)
			assessments.GET("/", h.getTestResults)
			assessments.GET("/statistics", h.managerMiddleware(), h.getTestStatistics)
		}

		records := api.Group("/records")
		records.Use(h.authMiddleware())
		{
			records.GET("/", h.getMedicalRecords)
			records.GET("/:id", h.getMedicalRecordByID)

			doctor := records.Group("/", h.doctorMiddleware())
			{
				doctor.POST("/", h.createMedicalRecord)
				doctor.PUT("/:id", h.updateMedicalRecord)
				doctor.DELETE("/:id", h.deleteMedicalRecord)
			}
		}
	}
}
