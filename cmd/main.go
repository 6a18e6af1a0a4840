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

	cancelBookingsHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/cancel_bookings"
	createBookingHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/create_booking"
	ensureHorizonHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/ensure_horizon"
	getAgentSlotsHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/get_agent_slots"
	getAvailableDatesHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/get_available_dates"
	getAvailableMarketsHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/get_available_markets"
	getAvailableServicesHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/get_available_services"
	getMarketSlotsHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/get_market_slots"
	sendRemindersHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/send_reminders"
	toggleSlotHandler "github.com/avilov/BOH-SchedulingService/internal/api/handlers/toggle_slot"
	"github.com/avilov/BOH-SchedulingService/internal/api/middleware"
	"github.com/avilov/BOH-SchedulingService/internal/config"
	directoryRepo "github.com/avilov/BOH-SchedulingService/internal/infra/storage/directory"
	slotRepo "github.com/avilov/BOH-SchedulingService/internal/infra/storage/slot"
	identityClient "github.com/avilov/BOH-SchedulingService/internal/integrations/identity"
	notifierClient "github.com/avilov/BOH-SchedulingService/internal/integrations/notifier"
	availabilityService "github.com/avilov/BOH-SchedulingService/internal/service/availability"
	remindersService "github.com/avilov/BOH-SchedulingService/internal/service/reminders"
	scheduleService "github.com/avilov/BOH-SchedulingService/internal/service/schedule"
	cancelBookingsUC "github.com/avilov/BOH-SchedulingService/internal/usecase/cancel_bookings"
	createBookingUC "github.com/avilov/BOH-SchedulingService/internal/usecase/create_booking"
	getMarketSlotsUC "github.com/avilov/BOH-SchedulingService/internal/usecase/get_market_slots"
	"github.com/avilov/BOH-SchedulingService/pkg/dbmetrics"
	"github.com/avilov/BOH-SchedulingService/pkg/logger"
	"github.com/avilov/BOH-SchedulingService/pkg/metrics"
	"github.com/avilov/BOH-SchedulingService/pkg/simpletxmanager"
	"github.com/avilov/BOH-SchedulingService/pkg/txmanager"
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

	log.Info("Starting BOH-SchedulingService...")
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
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	identity := identityClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Notifier=%s timeout=%ds, Directory=%s timeout=%ds)",
		cfg.Notifier.URL, cfg.Notifier.Timeout, cfg.Directory.URL, cfg.Directory.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository      *slotRepo.Repository
		directoryRepository *directoryRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		directoryRepository = directoryRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		directoryRepository = directoryRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		slotRepository,
		cfg.Scheduling.ReferenceZone,
		cfg.Scheduling.LookaheadDays,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		slotRepository,
		directoryRepository,
		identity,
		cfg.Scheduling.HorizonDays,
		cfg.Scheduling.StartHour,
		cfg.Scheduling.EndHour,
		cfg.Scheduling.ReferenceZone,
		log,
	)
	remindersSvc := remindersService.NewService(
		slotRepository,
		directoryRepository,
		notifier,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		directoryRepository,
		notifier,
		txMgr,
		log,
	)
	cancelBookingsUseCase := cancelBookingsUC.NewUseCase(
		slotRepository,
		directoryRepository,
		notifier,
		txMgr,
		cfg.Scheduling.ReferenceZone,
		log,
	)
	getMarketSlotsUseCase := getMarketSlotsUC.NewUseCase(
		slotRepository,
		directoryRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableServices := getAvailableServicesHandler.NewHandler(availabilitySvc, log)
	getAvailableMarkets := getAvailableMarketsHandler.NewHandler(availabilitySvc, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(availabilitySvc, log)
	getMarketSlots := getMarketSlotsHandler.NewHandler(getMarketSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBookings := cancelBookingsHandler.NewHandler(cancelBookingsUseCase, log)
	getAgentSlots := getAgentSlotsHandler.NewHandler(scheduleSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(scheduleSvc, log)
	ensureHorizon := ensureHorizonHandler.NewHandler(scheduleSvc, log)
	sendReminders := sendRemindersHandler.NewHandler(remindersSvc, cfg.Scheduling.ReferenceZone, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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
	// PUBLIC ROUTES (клиентская воронка и бронирования)
	// ============================================================

	// Воронка: услуга -> рынок -> дата -> слоты
	api.HandleFunc("/services",
		getAvailableServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceName}/markets",
		getAvailableMarkets.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceName}/markets/{marketName}/dates",
		getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceName}/markets/{marketName}/slots",
		getMarketSlots.Handle).Methods(http.MethodGet)

	// Бронирование и отмена по телефону клиента
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/cancel", cancelBookings.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Agent-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание агента ---
	protected.HandleFunc("/agents/{agentId}/slots", getAgentSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/agents/{agentId}/slots/toggle", toggleSlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/agents/{agentId}/slots/generate", ensureHorizon.Handle).Methods(http.MethodPost)

	// ============================================================
	// INTERNAL JOBS (дергаются планировщиком)
	// ============================================================

	jobs := r.PathPrefix("/internal/jobs").Subrouter()
	jobs.HandleFunc("/extend-horizon", ensureHorizon.HandleExtend).Methods(http.MethodPost)
	jobs.HandleFunc("/reminders", sendReminders.Handle).Methods(http.MethodPost)

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

	log.Info("Server exited")
}
