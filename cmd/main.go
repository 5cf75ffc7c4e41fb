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

	bookAppointmentHandler "github.com/archportal/booking-service/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/archportal/booking-service/internal/api/handlers/cancel_appointment"
	createAppointmentTypeHandler "github.com/archportal/booking-service/internal/api/handlers/create_appointment_type"
	createCalendarHandler "github.com/archportal/booking-service/internal/api/handlers/create_calendar"
	createPersonHandler "github.com/archportal/booking-service/internal/api/handlers/create_person"
	deleteCalendarHandler "github.com/archportal/booking-service/internal/api/handlers/delete_calendar"
	getAppointmentHandler "github.com/archportal/booking-service/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/archportal/booking-service/internal/api/handlers/get_availability"
	getBookingLinkHandler "github.com/archportal/booking-service/internal/api/handlers/get_booking_link"
	getPersonHandler "github.com/archportal/booking-service/internal/api/handlers/get_person"
	getReceiptHandler "github.com/archportal/booking-service/internal/api/handlers/get_receipt"
	getWorkingHoursHandler "github.com/archportal/booking-service/internal/api/handlers/get_working_hours"
	importBankStatementHandler "github.com/archportal/booking-service/internal/api/handlers/import_bank_statement"
	issueBookingLinkHandler "github.com/archportal/booking-service/internal/api/handlers/issue_booking_link"
	listAppointmentTypesHandler "github.com/archportal/booking-service/internal/api/handlers/list_appointment_types"
	listAppointmentsHandler "github.com/archportal/booking-service/internal/api/handlers/list_appointments"
	listCalendarsHandler "github.com/archportal/booking-service/internal/api/handlers/list_calendars"
	testCalendarConnectionHandler "github.com/archportal/booking-service/internal/api/handlers/test_calendar_connection"
	updateAppointmentTypeHandler "github.com/archportal/booking-service/internal/api/handlers/update_appointment_type"
	updatePersonHandler "github.com/archportal/booking-service/internal/api/handlers/update_person"
	updateWorkingHoursHandler "github.com/archportal/booking-service/internal/api/handlers/update_working_hours"
	uploadReceiptHandler "github.com/archportal/booking-service/internal/api/handlers/upload_receipt"
	"github.com/archportal/booking-service/internal/api/middleware"
	"github.com/archportal/booking-service/internal/config"
	"github.com/archportal/booking-service/internal/domain"
	appointmentRepo "github.com/archportal/booking-service/internal/infra/storage/appointment"
	appointmentTypeRepo "github.com/archportal/booking-service/internal/infra/storage/appointmenttype"
	bankTransactionRepo "github.com/archportal/booking-service/internal/infra/storage/banktransaction"
	bookingTokenRepo "github.com/archportal/booking-service/internal/infra/storage/bookingtoken"
	calendarRepo "github.com/archportal/booking-service/internal/infra/storage/calendar"
	personRepo "github.com/archportal/booking-service/internal/infra/storage/person"
	receiptRepo "github.com/archportal/booking-service/internal/infra/storage/receipt"
	userRepo "github.com/archportal/booking-service/internal/infra/storage/user"
	workingHoursRepo "github.com/archportal/booking-service/internal/infra/storage/workinghours"
	"github.com/archportal/booking-service/internal/integrations/gemini"
	"github.com/archportal/booking-service/internal/integrations/googlecalendar"
	"github.com/archportal/booking-service/internal/integrations/icalfeed"
	"github.com/archportal/booking-service/internal/integrations/mailer"
	appointmentsService "github.com/archportal/booking-service/internal/service/appointments"
	appointmentTypesService "github.com/archportal/booking-service/internal/service/appointmenttypes"
	bankingService "github.com/archportal/booking-service/internal/service/banking"
	calendarsService "github.com/archportal/booking-service/internal/service/calendars"
	personsService "github.com/archportal/booking-service/internal/service/persons"
	workingHoursService "github.com/archportal/booking-service/internal/service/workinghours"
	bookAppointmentUC "github.com/archportal/booking-service/internal/usecase/book_appointment"
	extractReceiptUC "github.com/archportal/booking-service/internal/usecase/extract_receipt"
	getAvailabilityUC "github.com/archportal/booking-service/internal/usecase/get_availability"
	getBookingLinkUC "github.com/archportal/booking-service/internal/usecase/get_booking_link"
	issueBookingLinkUC "github.com/archportal/booking-service/internal/usecase/issue_booking_link"
	updatePersonUC "github.com/archportal/booking-service/internal/usecase/update_person"
	"github.com/archportal/booking-service/pkg/dbmetrics"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/metrics"
	"github.com/archportal/booking-service/pkg/ttlcache"
	"github.com/archportal/booking-service/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from %s", configPath)

	loc := cfg.Location()

	// Метрики. При выключенных метриках коллектор nil, его методы ничего не делают
	var metricsCollector *metrics.Metrics
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	users := userRepo.NewRepository(wrappedDB)
	hours := workingHoursRepo.NewRepository(wrappedDB)
	calendars := calendarRepo.NewRepository(wrappedDB)
	appointments := appointmentRepo.NewRepository(wrappedDB)
	appointmentTypes := appointmentTypeRepo.NewRepository(wrappedDB)
	tokens := bookingTokenRepo.NewRepository(wrappedDB)
	persons := personRepo.NewRepository(wrappedDB)
	transactions := bankTransactionRepo.NewRepository(wrappedDB)
	receipts := receiptRepo.NewRepository(wrappedDB)

	// Интеграции
	icalClient := icalfeed.NewClient(time.Duration(cfg.Calendar.ICalTimeout)*time.Second, loc, log)

	busySources := map[domain.CalendarProvider]getAvailabilityUC.BusySource{
		domain.CalendarProviderICal: icalClient,
	}
	pingers := map[domain.CalendarProvider]calendarsService.Pinger{
		domain.CalendarProviderICal: icalClient,
	}

	var eventCreator bookAppointmentUC.EventCreator
	if cfg.Google.CredentialsFile != "" {
		googleSvc, err := googlecalendar.NewService(context.Background(), cfg.Google.CredentialsFile)
		if err != nil {
			log.Fatal("Failed to initialize Google Calendar: %v", err)
		}
		googleClient := googlecalendar.NewClient(googleSvc, time.Duration(cfg.Google.Timeout)*time.Second, log)

		busySources[domain.CalendarProviderGoogle] = googleClient
		pingers[domain.CalendarProviderGoogle] = googleClient
		eventCreator = googleClient
		log.Info("Google Calendar integration enabled (timeout=%ds)", cfg.Google.Timeout)
	} else {
		log.Warn("Google Calendar credentials not configured, google calendars are skipped")
	}

	mail := mailer.New(mailer.Config{
		Enabled:  cfg.Mail.Enabled,
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, loc, log)
	if !cfg.Mail.Enabled {
		log.Warn("Mail is disabled, confirmations and invitations are not sent")
	}

	var receiptExtractor *gemini.Client
	if cfg.Gemini.APIKey != "" {
		receiptExtractor, err = gemini.NewClient(
			context.Background(),
			cfg.Gemini.APIKey,
			cfg.Gemini.Model,
			time.Duration(cfg.Gemini.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize Gemini client: %v", err)
		}
		defer receiptExtractor.Close()
		log.Info("Receipt extraction enabled (model=%s)", cfg.Gemini.Model)
	} else {
		log.Warn("Gemini API key not configured, receipt upload is disabled")
	}

	// Сервисы
	statusCache := ttlcache.New[int64, domain.CalendarConnectionStatus](
		time.Duration(cfg.Calendar.ConnectionTestTTL)*time.Second,
		ttlcache.RealClock{},
	)

	hoursSvc := workingHoursService.NewService(hours, log)
	appointmentSvc := appointmentsService.NewService(appointments, txMgr, log)
	appointmentTypeSvc := appointmentTypesService.NewService(appointmentTypes, log)
	calendarSvc := calendarsService.NewService(calendars, pingers, txMgr, statusCache, ttlcache.RealClock{}, log)
	personSvc := personsService.NewService(persons, txMgr, log)
	bankingSvc := bankingService.NewService(transactions, receipts, txMgr, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		users,
		hoursSvc,
		calendars,
		appointments,
		appointmentTypes,
		busySources,
		metricsCollector,
		getAvailabilityUC.Options{
			StepMinutes:            cfg.Booking.SlotStepMinutes,
			DefaultDurationMinutes: cfg.Booking.DefaultDurationMinutes,
			MaxRangeDays:           cfg.Booking.MaxRangeDays,
			DemoFallback:           cfg.Calendar.DemoFallback,
			Location:               loc,
		},
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		users,
		hoursSvc,
		tokens,
		appointments,
		appointmentTypes,
		calendars,
		eventCreator,
		mail,
		txMgr,
		metricsCollector,
		bookAppointmentUC.Options{
			StepMinutes: cfg.Booking.SlotStepMinutes,
			Location:    loc,
		},
		log,
	)

	issueBookingLinkUseCase := issueBookingLinkUC.NewUseCase(
		tokens,
		appointmentTypes,
		mail,
		issueBookingLinkUC.Options{
			DefaultTTLHours: cfg.Booking.TokenTTLHours,
			PublicURL:       cfg.Booking.PublicURL,
		},
		log,
	)

	getBookingLinkUseCase := getBookingLinkUC.NewUseCase(tokens, appointmentTypes, cfg.Booking.DefaultDurationMinutes, log)
	updatePersonUseCase := updatePersonUC.NewUseCase(persons, txMgr, log)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getBookingLink := getBookingLinkHandler.NewHandler(getBookingLinkUseCase, log)
	issueBookingLink := issueBookingLinkHandler.NewHandler(issueBookingLinkUseCase, log)
	listAppointmentTypes := listAppointmentTypesHandler.NewHandler(appointmentTypeSvc, log)
	createAppointmentType := createAppointmentTypeHandler.NewHandler(appointmentTypeSvc, log)
	updateAppointmentType := updateAppointmentTypeHandler.NewHandler(appointmentTypeSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, loc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(hoursSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(hoursSvc, log)
	listCalendars := listCalendarsHandler.NewHandler(calendarSvc, log)
	createCalendar := createCalendarHandler.NewHandler(calendarSvc, log)
	deleteCalendar := deleteCalendarHandler.NewHandler(calendarSvc, log)
	testCalendarConnection := testCalendarConnectionHandler.NewHandler(calendarSvc, log)
	getPerson := getPersonHandler.NewHandler(personSvc, log)
	createPerson := createPersonHandler.NewHandler(personSvc, log)
	updatePerson := updatePersonHandler.NewHandler(updatePersonUseCase, log)
	getReceipt := getReceiptHandler.NewHandler(bankingSvc, log)
	importBankStatement := importBankStatementHandler.NewHandler(bankingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid trusted proxies: %v", err)
		}
		limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, trustedProxies...)
		public.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limit enabled for public routes (%d req/min, burst=%d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// Свободные слоты
	public.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Активные типы встреч
	public.HandleFunc("/appointment-types", listAppointmentTypes.Handle).Methods(http.MethodGet)

	// Данные ссылки на запись
	public.HandleFunc("/booking-links/{token}", getBookingLink.Handle).Methods(http.MethodGet)

	// Запись по ссылке
	public.HandleFunc("/book-appointment", bookAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT администратора)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret), log))

	// --- Ссылки на запись ---
	protected.HandleFunc("/booking-links", issueBookingLink.Handle).Methods(http.MethodPost)

	// --- Типы встреч ---
	protected.HandleFunc("/appointment-types", createAppointmentType.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointment-types/{typeId}", updateAppointmentType.Handle).Methods(http.MethodPut)

	// --- Записи ---
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Рабочие часы ---
	protected.HandleFunc("/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

	// --- Календари ---
	protected.HandleFunc("/calendars", listCalendars.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/calendars", createCalendar.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendars/{calendarId}", deleteCalendar.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/calendars/{calendarId}/test", testCalendarConnection.Handle).Methods(http.MethodGet)

	// --- Контакты ---
	protected.HandleFunc("/persons", createPerson.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/persons/{personId}", getPerson.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/persons/{personId}", updatePerson.Handle).Methods(http.MethodPut)

	// --- Бухгалтерия ---
	protected.HandleFunc("/bank-statements", importBankStatement.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/receipts/{receiptId}", getReceipt.Handle).Methods(http.MethodGet)
	if receiptExtractor != nil {
		extractReceiptUseCase := extractReceiptUC.NewUseCase(
			receiptExtractor,
			receipts,
			transactions,
			txMgr,
			metricsCollector,
			cfg.Gemini.MatchWindowDays,
			log,
		)
		uploadReceipt := uploadReceiptHandler.NewHandler(extractReceiptUseCase, log)
		protected.HandleFunc("/receipts", uploadReceipt.Handle).Methods(http.MethodPost)
	}

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
	close(stopMetricsCh)

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
