package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelViewingHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/cancel_viewing"
	confirmViewingHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/confirm_viewing"
	getAccessCodeHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/get_access_code"
	getPropertyViewingsHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/get_property_viewings"
	getViewingHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/get_viewing"
	getVisitorViewingsHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/get_visitor_viewings"
	listAvailabilityHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/list_availability"
	publishAvailabilityHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/publish_availability"
	requestViewingHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/request_viewing"
	revokeAvailabilityHandler "github.com/keyvisit/KV-ViewingService/internal/api/handlers/revoke_availability"
	"github.com/keyvisit/KV-ViewingService/internal/api/middleware"
	"github.com/keyvisit/KV-ViewingService/internal/config"
	"github.com/keyvisit/KV-ViewingService/internal/domain"
	credentialRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/credential"
	reservationRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	slotRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/slot"
	listingServiceClient "github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
	notifierClient "github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
	userServiceClient "github.com/keyvisit/KV-ViewingService/internal/integrations/userservice"
	credentialsService "github.com/keyvisit/KV-ViewingService/internal/service/credentials"
	viewingsService "github.com/keyvisit/KV-ViewingService/internal/service/viewings"
	confirmViewingUC "github.com/keyvisit/KV-ViewingService/internal/usecase/confirm_viewing"
	listAvailabilityUC "github.com/keyvisit/KV-ViewingService/internal/usecase/list_availability"
	publishAvailabilityUC "github.com/keyvisit/KV-ViewingService/internal/usecase/publish_availability"
	requestViewingUC "github.com/keyvisit/KV-ViewingService/internal/usecase/request_viewing"
	revokeAvailabilityUC "github.com/keyvisit/KV-ViewingService/internal/usecase/revoke_availability"
	"github.com/keyvisit/KV-ViewingService/pkg/dbmetrics"
	"github.com/keyvisit/KV-ViewingService/pkg/logger"
	"github.com/keyvisit/KV-ViewingService/pkg/metrics"
	"github.com/keyvisit/KV-ViewingService/pkg/simpletxmanager"
	"github.com/keyvisit/KV-ViewingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting KV-ViewingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	listingClient := listingServiceClient.NewClient(
		cfg.ListingService.URL,
		time.Duration(cfg.ListingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, ListingService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.ListingService.URL, cfg.ListingService.Timeout)

	// Подключаемся к RabbitMQ (если включен)
	var notifier *notifierClient.Client
	if cfg.Notifier.Enabled {
		notifier, err = notifierClient.NewClient(cfg.Notifier.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer notifier.Close()
		log.Info("Notifier connected to RabbitMQ")
	}

	// Интерфейсы нотификатора для потребителей: при выключенном нотификаторе
	// передаем nil-интерфейс, а не типизированный nil клиента
	var viewingsNotifier viewingsService.Notifier
	var requestNotifier requestViewingUC.Notifier
	var confirmNotifier confirmViewingUC.Notifier
	var revokeNotifier revokeAvailabilityUC.Notifier
	if notifier != nil {
		viewingsNotifier = notifier
		requestNotifier = notifier
		confirmNotifier = notifier
		revokeNotifier = notifier
	}

	// Подключаемся к Redis для rate limiting (если включен)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Сервис работоспособен и без лимитера
			log.Warn("Failed to ping Redis, rate limiter degraded: %v", err)
		} else {
			log.Info("Redis connected at %s", cfg.Redis.Addr)
		}
		defer redisClient.Close()
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository        *slotRepo.Repository
		reservationRepository *reservationRepo.Repository
		credentialRepository  *credentialRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		credentialRepository = credentialRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		credentialRepository = credentialRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Политика окна действия кода доступа
	accessPolicy := domain.DefaultAccessWindowPolicy()
	if cfg.AccessWindow.GraceBeforeMinutes > 0 {
		accessPolicy = domain.AccessWindowPolicy{
			GraceBefore: time.Duration(cfg.AccessWindow.GraceBeforeMinutes) * time.Minute,
		}
	}

	// Инициализируем сервисы
	credentialSvc := credentialsService.NewService(
		credentialRepository,
		reservationRepository,
		accessPolicy,
		log,
	)
	viewingSvc := viewingsService.NewService(
		reservationRepository,
		credentialSvc,
		listingClient,
		viewingsNotifier,
		txMgr,
		log,
	)

	// Инициализируем use cases
	publishAvailabilityUseCase := publishAvailabilityUC.New(
		slotRepository,
		listingClient,
		txMgr,
		nil,
		log,
	)
	listAvailabilityUseCase := listAvailabilityUC.New(
		slotRepository,
		reservationRepository,
		listingClient,
		nil,
		log,
	)
	requestViewingUseCase := requestViewingUC.New(
		slotRepository,
		reservationRepository,
		credentialSvc,
		listingClient,
		userClient,
		requestNotifier,
		txMgr,
		nil,
		log,
	)
	confirmViewingUseCase := confirmViewingUC.New(
		reservationRepository,
		credentialSvc,
		listingClient,
		confirmNotifier,
		txMgr,
		nil,
		log,
	)
	revokeAvailabilityUseCase := revokeAvailabilityUC.New(
		slotRepository,
		reservationRepository,
		credentialSvc,
		revokeNotifier,
		txMgr,
		nil,
		log,
	)

	// Инициализируем handlers
	publishAvailability := publishAvailabilityHandler.NewHandler(publishAvailabilityUseCase, log)
	listAvailability := listAvailabilityHandler.NewHandler(listAvailabilityUseCase, log)
	revokeAvailability := revokeAvailabilityHandler.NewHandler(revokeAvailabilityUseCase, log)
	requestViewing := requestViewingHandler.NewHandler(requestViewingUseCase, log)
	confirmViewing := confirmViewingHandler.NewHandler(confirmViewingUseCase, log)
	cancelViewing := cancelViewingHandler.NewHandler(viewingSvc, log)
	getViewing := getViewingHandler.NewHandler(viewingSvc, log)
	getVisitorViewings := getVisitorViewingsHandler.NewHandler(viewingSvc, log)
	getPropertyViewings := getPropertyViewingsHandler.NewHandler(viewingSvc, log)
	getAccessCode := getAccessCodeHandler.NewHandler(credentialSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список слотов объекта с признаком занятости
	api.HandleFunc("/properties/{propertyId}/slots", listAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Доступность (для владельцев) ---
	// Публикация окон доступности
	protected.HandleFunc("/properties/{propertyId}/slots", publishAvailability.Handle).Methods(http.MethodPost)

	// Отзыв слота
	protected.HandleFunc("/slots/{slotId}", revokeAvailability.Handle).Methods(http.MethodDelete)

	// --- Просмотры ---
	// Бронирование просмотра
	protected.HandleFunc("/viewings", requestViewing.Handle).Methods(http.MethodPost)

	// Получение просмотра по ID
	protected.HandleFunc("/viewings/{viewingId}", getViewing.Handle).Methods(http.MethodGet)

	// Подтверждение просмотра владельцем
	protected.HandleFunc("/viewings/{viewingId}/confirm", confirmViewing.Handle).Methods(http.MethodPatch)

	// Отмена просмотра
	protected.HandleFunc("/viewings/{viewingId}/cancel", cancelViewing.Handle).Methods(http.MethodPatch)

	// История просмотров посетителя
	protected.HandleFunc("/users/{userId}/viewings", getVisitorViewings.Handle).Methods(http.MethodGet)

	// Просмотры по объекту (для владельцев)
	protected.HandleFunc("/properties/{propertyId}/viewings", getPropertyViewings.Handle).Methods(http.MethodGet)

	// --- Код доступа ---
	// Чтение кода доступа (с rate limiting)
	accessCode := protected.PathPrefix("/viewings/{viewingId}/access-code").Subrouter()
	accessCode.Use(middleware.RevealRateLimiter(
		redisClient,
		cfg.Redis.RevealLimit,
		time.Duration(cfg.Redis.RevealWindowSeconds)*time.Second,
		log,
	))
	accessCode.HandleFunc("", getAccessCode.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
