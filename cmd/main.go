package main

import (
	"context"
	"database/sql"
	"errors"
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
	"golang.org/x/sync/errgroup"

	cancelReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/cancel_reservation"
	createBlockoutHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_blockout"
	createReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_reservation"
	deleteBlockoutHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/delete_blockout"
	getApartmentNotificationsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_apartment_notifications"
	getApartmentReservationsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_apartment_reservations"
	getAvailabilityHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_reservation"
	getScheduleConfigHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_schedule_config"
	listBlockoutsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/list_blockouts"
	updateScheduleConfigHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/cache/schedulecache"
	blockoutRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/blockout"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/migrations"
	notificationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/notification"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/gameservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/notifier"
	availabilityService "github.com/m04kA/SMC-CourtBookingService/internal/service/availability"
	blockoutsService "github.com/m04kA/SMC-CourtBookingService/internal/service/blockouts"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/priority"
	reservationsService "github.com/m04kA/SMC-CourtBookingService/internal/service/reservations"
	scheduleService "github.com/m04kA/SMC-CourtBookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-CourtBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики (nil - выключены, все вызовы становятся no-op)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

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

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		if version, dirty, err := migrations.Version(db); err == nil {
			log.Info("Database migrations applied (version=%d, dirty=%t)", version, dirty)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	blockoutRepository := blockoutRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)
	courtRepository := courtRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Правила бронирования и часовой пояс площадки (проверены в config.Validate)
	policy, err := cfg.Booking.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	loc := policy.Location
	scheduleDefaults, err := cfg.Schedule.Defaults()
	if err != nil {
		log.Fatal("Invalid schedule defaults: %v", err)
	}

	// Конфигурация расписания, опционально через кэш Redis
	var scheduleProvider schedulecache.Provider = scheduleService.NewService(scheduleRepository, scheduleDefaults, log)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, schedule cache will fall through: %v", cfg.Redis.Addr, err)
		}
		cancel()
		scheduleProvider = schedulecache.New(redisClient, scheduleProvider,
			time.Duration(cfg.Schedule.CacheTTL)*time.Second, log)
		log.Info("Schedule cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Schedule.CacheTTL)
	}

	// Интеграции
	var displacementNotifier createBookingUC.Notifier = notifier.Disabled{Log: log}
	if cfg.RabbitMQ.Enabled {
		publisher, err := notifier.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		displacementNotifier = publisher
		log.Info("Displacement notifications enabled (exchange=%s, routing_key=%s)",
			cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
	}

	var games createBookingUC.GameCanceller = gameservice.Disabled{}
	if cfg.GameService.Enabled {
		games = gameservice.NewClient(cfg.GameService.URL, cfg.GameService.Token,
			time.Duration(cfg.GameService.Timeout)*time.Second, log)
		log.Info("Game service client initialized (url=%s, timeout=%ds)", cfg.GameService.URL, cfg.GameService.Timeout)
	}

	// Стратегия исполнения вытеснения
	var strategy createBookingUC.Strategy
	switch cfg.Booking.ExecutionStrategy {
	case config.StrategyFallback:
		strategy = createBookingUC.NewFallbackStrategy()
	default:
		strategy = createBookingUC.NewAtomicStrategy(txMgr)
	}
	log.Info("Booking execution strategy: %s", cfg.Booking.ExecutionStrategy)

	// Сервисы
	assigner := priority.NewAssigner(reservationRepository, loc)
	reconciler := priority.NewReconciler(reservationRepository, loc, log)
	availabilitySvc := availabilityService.NewService(reservationRepository, blockoutRepository, policy)
	timeProvider := &createBookingUC.RealTimeProvider{}

	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		notificationRepository,
		games,
		reconciler,
		metricsCollector,
		timeProvider,
		loc,
		log,
	)
	blockoutsSvc := blockoutsService.NewService(
		blockoutRepository,
		reservationRepository,
		courtRepository,
		txMgr,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(createBookingUC.Deps{
		ReservationRepo:  reservationRepository,
		CourtRepo:        courtRepository,
		NotificationRepo: notificationRepository,
		Schedule:         scheduleProvider,
		Availability:     availabilitySvc,
		Assigner:         assigner,
		Reconciler:       reconciler,
		Notifier:         displacementNotifier,
		Games:            games,
		Strategy:         strategy,
		Policy:           policy,
		Metrics:          metricsCollector,
		TimeProvider:     timeProvider,
		Logger:           log,
	})
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		courtRepository,
		scheduleProvider,
		availabilitySvc,
		timeProvider,
		log,
	)

	// Handlers
	createReservation := createReservationHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getApartmentReservations := getApartmentReservationsHandler.NewHandler(reservationsSvc, log)
	getApartmentNotifications := getApartmentNotificationsHandler.NewHandler(reservationsSvc, log)
	createBlockout := createBlockoutHandler.NewHandler(blockoutsSvc, log)
	listBlockouts := listBlockoutsHandler.NewHandler(blockoutsSvc, log)
	deleteBlockout := deleteBlockoutHandler.NewHandler(blockoutsSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleProvider, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleProvider, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ========================================
	// PUBLIC ROUTES
	// ========================================
	api.HandleFunc("/courts/{courtId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule-config", getScheduleConfig.Handle).Methods(http.MethodGet)

	// ========================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ========================================
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/apartments/{apartmentId}/reservations", getApartmentReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/apartments/{apartmentId}/notifications", getApartmentNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/courts/{courtId}/blockouts", listBlockouts.Handle).Methods(http.MethodGet)

	// ========================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ========================================
	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)

	admin.HandleFunc("/courts/{courtId}/blockouts", createBlockout.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blockouts/{blockoutId}", deleteBlockout.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening on port %d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server exited")
}
