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

	cancelBookingHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/get_booking"
	getBookingPriorityHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/get_booking_priority"
	getDayScheduleHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/get_day_schedule"
	getScheduleConfigHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/get_schedule_config"
	getUserBookingsHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/get_venue_bookings"
	updateBookingStatusHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/update_booking_status"
	updateScheduleConfigHandler "github.com/m04kA/SVM-BookingService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/SVM-BookingService/internal/api/middleware"
	"github.com/m04kA/SVM-BookingService/internal/config"
	bookingRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/schedule"
	placeServiceClient "github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	bookingsService "github.com/m04kA/SVM-BookingService/internal/service/bookings"
	scheduleService "github.com/m04kA/SVM-BookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SVM-BookingService/internal/usecase/create_booking"
	getBookingPriorityUC "github.com/m04kA/SVM-BookingService/internal/usecase/get_booking_priority"
	getDayScheduleUC "github.com/m04kA/SVM-BookingService/internal/usecase/get_day_schedule"
	"github.com/m04kA/SVM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SVM-BookingService/pkg/logger"
	"github.com/m04kA/SVM-BookingService/pkg/metrics"
	"github.com/m04kA/SVM-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SVM-BookingService/pkg/txmanager"
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

	log.Info("Starting SVM-BookingService...")
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

	// Инициализируем клиент каталога площадок
	placeClient := placeServiceClient.NewClient(
		cfg.PlaceService.URL,
		time.Duration(cfg.PlaceService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (PlaceService=%s timeout=%ds)",
		cfg.PlaceService.URL, cfg.PlaceService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		placeClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		placeClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		placeClient,
		txMgr,
		log,
	)
	getBookingPriorityUseCase := getBookingPriorityUC.NewUseCase(
		bookingRepository,
		placeClient,
		log,
	)

	// Инициализируем handlers
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookingPriority := getBookingPriorityHandler.NewHandler(getBookingPriorityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)

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

	// Разбиение дня площадки на типизированные диапазоны
	api.HandleFunc("/venues/{venueId}/day-schedule",
		getDaySchedule.Handle).Methods(http.MethodGet)

	// Получение расписания площадки
	api.HandleFunc("/venues/{venueId}/schedule",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание заявки на бронирование (один или несколько интервалов)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Приоритет заявки среди конкурирующих
	protected.HandleFunc("/bookings/requests/{requestId}/priority",
		getBookingPriority.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для менеджеров) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Обновление расписания площадки
	protected.HandleFunc("/venues/{venueId}/schedule", updateScheduleConfig.Handle).Methods(http.MethodPut)

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
