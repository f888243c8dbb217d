package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/St1cky1/marketplace-service/internal/api"
	"github.com/St1cky1/marketplace-service/internal/infrastructure/auth"
	"github.com/St1cky1/marketplace-service/internal/infrastructure/client"
	"github.com/St1cky1/marketplace-service/internal/repository"
	"github.com/St1cky1/marketplace-service/internal/usecase"
	"github.com/St1cky1/marketplace-service/internal/worker"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/redis/rueidis"
)

func main() {
	var wg sync.WaitGroup

	// .env опционален, в контейнере конфиг приходит из окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"))

	rabbitMQURL := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		os.Getenv("RABBITMQ_USER"),
		os.Getenv("RABBITMQ_PASSWORD"),
		os.Getenv("RABBITMQ_HOST"),
		os.Getenv("RABBITMQ_PORT"))

	// Запускаем миграции
	if err := runMigrations(dbURL); err != nil {
		log.Fatal("❌ Ошибка миграций:", err)
	}

	// Подключаемся к БД
	pg, err := client.NewPostgresClient(client.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  "disable",
	})
	if err != nil {
		log.Fatal("❌ Ошибка подключения к БД:", err)
	}
	defer pg.Close()
	fmt.Println("✅ Подключение к БД установлено")

	// Подключаемся к RabbitMQ
	rabbitMQ, err := client.NewRabbitMQClient(rabbitMQURL)
	if err != nil {
		log.Fatal("❌ Ошибка подключения к RabbitMQ:", err)
	}
	defer rabbitMQ.Close()
	fmt.Println("✅ Подключение к RabbitMQ установлено")

	// Redis опционален: без него статистика считается напрямую из БД
	var redisClient rueidis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient, err = client.NewRedisClient(addr)
		if err != nil {
			log.Printf("⚠️  Redis недоступен, кэш статистики отключен: %v", err)
		} else {
			defer redisClient.Close()
			fmt.Println("✅ Подключение к Redis установлено")
		}
	}

	// Инициализируем репозитории
	userRepo := repository.NewUserRepository(pg.Pool)
	taskRepo := repository.NewTaskRepository(pg.Pool)
	bidRepo := repository.NewBidRepository(pg.Pool)
	bookingRepo := repository.NewBookingRepository(pg.Pool)
	reviewRepo := repository.NewReviewRepository(pg.Pool)
	refreshTokenRepo := repository.NewRefreshTokenRepository(pg.Pool)
	avatarRepo := repository.NewAvatarRepository(pg.Pool)
	auditRepo := repository.NewAuditRepository(pg.Pool)

	// Инициализируем сервисы
	jwtManager := auth.NewJWTManager()
	passwordManager := auth.NewPasswordManager()
	policy := usecase.NewPolicyGate()
	avatarDir := os.Getenv("AVATAR_DIR")
	if avatarDir == "" {
		avatarDir = "var/avatars"
	}

	services := &api.Services{
		Auth:    usecase.NewAuthService(userRepo, refreshTokenRepo, passwordManager, jwtManager),
		Task:    usecase.NewTaskService(taskRepo, bookingRepo, userRepo, policy, rabbitMQ),
		Bid:     usecase.NewBidEngine(bidRepo, taskRepo, policy, rabbitMQ),
		Booking: usecase.NewBookingService(bookingRepo, policy, rabbitMQ),
		Review:  usecase.NewReviewService(reviewRepo, bookingRepo, policy),
		User:    usecase.NewUserService(userRepo, avatarRepo, policy, rabbitMQ, avatarDir),
		Stats:   usecase.NewStatsService(userRepo, policy, redisClient, ""),
	}

	// Запускаем воркер для обработки аудит-сообщений
	auditWorker := worker.NewAuditWorker(rabbitMQURL, auditRepo)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Println("Запуск Audit Worker...")
		auditWorker.Start(workerCtx)
	}()

	// HTTP сервер
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	router := api.NewRouter(services, jwtManager, avatarDir)
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Printf("✅ HTTP сервер запущен на порту %s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ HTTP server error: %v", err)
		}
	}()

	fmt.Println("📋 Marketplace API готов к работе!")
	fmt.Println("Для остановки нажмите Ctrl+C")

	// Ждем сигнал завершения
	waitForShutdown(server, workerCancel)
	wg.Wait()
	fmt.Println("✅ Приложение завершено корректно")
}

func waitForShutdown(server *http.Server, workerCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	fmt.Println("Завершение работы...")

	// Останавливаем воркер
	workerCancel()

	// Даем время на graceful shutdown HTTP сервера
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP сервера: %v", err)
	}
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	fmt.Println("✅ Миграции выполнены успешно")
	return nil
}
