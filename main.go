package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/config"
	_ "github.com/Marshal-Nguyen/mental-care-server-NodeNet/docs"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/gateway"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/repository"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/service"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/storage"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/transport/rest"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/database"
	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/pkg/logger"
)

// @title Mental Care API
// @version 1.0
// @description API платформы заботы о ментальном здоровье: расписания врачей, бронирования, оплата, ИИ-компаньон

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// .env необязателен: в контейнере конфигурация приходит из окружения.
	_ = godotenv.Load()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Не удалось загрузить конфигурацию", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, загрузка аватаров будет недоступна")
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Payment:     gateway.NewPaymentClient(cfg.Payment, log),
		Companion:   gateway.NewCompanionClient(cfg.AI, log),
	})

	// Фоновая отмена неоплаченных бронирований, зависших в Pending.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := services.Booking.ExpireStalePending(ctx); err != nil {
			log.Error("Ошибка фоновой отмены бронирований", zap.Error(err))
		}
	}); err != nil {
		log.Fatal("Не удалось запланировать фоновую задачу", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := rest.NewHandler(services, log, cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Ошибка при остановке сервера", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}
