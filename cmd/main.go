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
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers/get_booking_stats"
	getSchedulerConfigHandler "github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers/get_scheduler_config"
	healthHandler "github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers/health"
	"github.com/m04kA/SMC-TeamsScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-TeamsScheduler/internal/config"
	bookingsCache "github.com/m04kA/SMC-TeamsScheduler/internal/infra/cache/bookings"
	bookingRepo "github.com/m04kA/SMC-TeamsScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeamsScheduler/internal/integrations/teams"
	availabilityService "github.com/m04kA/SMC-TeamsScheduler/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-TeamsScheduler/internal/service/bookings"
	configService "github.com/m04kA/SMC-TeamsScheduler/internal/service/config"
	meetingsService "github.com/m04kA/SMC-TeamsScheduler/internal/service/meetings"
	createBookingUC "github.com/m04kA/SMC-TeamsScheduler/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TeamsScheduler/internal/usecase/get_available_slots"
	meetingsWorker "github.com/m04kA/SMC-TeamsScheduler/internal/worker/meetings"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/logger"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/metrics"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-TeamsScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	schedulerCfg, err := cfg.SchedulerConfig()
	if err != nil {
		log.Fatal("Invalid scheduler config: %v", err)
	}
	log.Info("Scheduler: hours=%s-%s, interval=%dm, padding=%dm, time_zone=%s",
		schedulerCfg.BusinessHours.Start, schedulerCfg.BusinessHours.End,
		schedulerCfg.SlotIntervalMinutes, schedulerCfg.PaddingMinutes, schedulerCfg.TimeZone)

	// Коллектор метрик пишет всегда, endpoint и HTTP middleware только при metrics.enabled
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозиторий и кэш бронирований
	bookingRepository := bookingRepo.NewRepository(wrappedDB, schedulerCfg.PaddingMinutes)
	bookingView := bookingsCache.NewView(
		bookingRepository,
		cfg.Cache.Size,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		metricsCollector,
	)

	// Интеграция с Microsoft Teams (опционально)
	var (
		meetingClient  meetingsService.MeetingClient
		calendarClient availabilityService.CalendarClient
	)
	if cfg.Teams.Enabled {
		teamsClient := teams.NewClient(teams.Config{
			TenantID:       cfg.Teams.TenantID,
			ClientID:       cfg.Teams.ClientID,
			ClientSecret:   cfg.Teams.ClientSecret,
			OrganizerEmail: cfg.Teams.OrganizerEmail,
			BaseURL:        cfg.Teams.GraphBaseURL,
			TokenURL:       cfg.Teams.TokenURL,
			Timeout:        time.Duration(cfg.Teams.TimeoutSeconds) * time.Second,
		}, log)
		meetingClient = teamsClient
		if cfg.Teams.CalendarAvailability {
			calendarClient = teamsClient
		}
		log.Info("Teams integration enabled (organizer=%s, calendar_availability=%t)",
			cfg.Teams.OrganizerEmail, cfg.Teams.CalendarAvailability)
	} else {
		log.Info("Teams integration disabled, bookings are stored without meetings")
	}

	// Очередь встреч (опционально)
	var (
		enqueuer    meetingsService.TaskEnqueuer
		queueClient *asynq.Client
	)
	workerCfg := meetingsWorker.ServerConfig{
		RedisAddr:       cfg.Queue.RedisAddr,
		RedisPassword:   cfg.Queue.RedisPassword,
		RedisDB:         cfg.Queue.RedisDB,
		Concurrency:     cfg.Queue.Concurrency,
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
	}
	if cfg.Queue.Enabled && meetingClient != nil {
		queueClient = asynq.NewClient(workerCfg.RedisOpt())
		defer queueClient.Close()
		enqueuer = queueClient
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		bookingView,
		calendarClient,
		schedulerCfg,
		cfg.StoreTimeout(),
		metricsCollector,
		log,
	)
	meetingsSvc := meetingsService.NewService(
		bookingRepository,
		meetingClient,
		enqueuer,
		meetingsService.Config{
			TimeZone: schedulerCfg.TimeZone,
			Location: schedulerCfg.Location,
			Timeout:  time.Duration(cfg.Teams.TimeoutSeconds) * time.Second,
			MaxRetry: cfg.Queue.MaxRetry,
		},
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	configSvc := configService.NewService(schedulerCfg)

	// Воркер очереди встреч
	var worker *meetingsWorker.Server
	if enqueuer != nil {
		worker = meetingsWorker.NewServer(workerCfg, meetingsWorker.NewHandler(meetingsSvc, log))
		if err := worker.Start(); err != nil {
			log.Fatal("Failed to start meetings worker: %v", err)
		}
		log.Info("Meetings worker started (redis=%s, concurrency=%d, max_retry=%d)",
			cfg.Queue.RedisAddr, cfg.Queue.Concurrency, cfg.Queue.MaxRetry)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		bookingView,
		meetingsSvc,
		txMgr,
		metricsCollector,
		cfg.Teams.OrganizerEmail,
		cfg.StoreTimeout(),
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilitySvc, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	getSchedulerConfig := getSchedulerConfigHandler.NewHandler(configSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1/scheduler").Subrouter()

	// Настройки формы бронирования
	api.HandleFunc("/config", getSchedulerConfig.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	// stats регистрируется раньше {bookingId}
	api.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.Server.AllowedOrigins)(r),
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Воркер останавливаем после HTTP сервера
	if worker != nil {
		worker.Shutdown()
		log.Info("Meetings worker stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
