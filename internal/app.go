package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	clock_adapter "brokerage-service/internal/adapters/clock"
	"brokerage-service/internal/adapters/fileurl"
	logger_adapter "brokerage-service/internal/adapters/logger"
	postgres_adapter "brokerage-service/internal/adapters/postgres"
	rabbitmq_adapter "brokerage-service/internal/adapters/rabbitmq"
	"brokerage-service/internal/adapters/rest"
	"brokerage-service/internal/configs"
	"brokerage-service/internal/constants"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/usecase"
	fluentlogger "brokerage-service/pkg/fluent_logger"
	"brokerage-service/pkg/postgres"
	"brokerage-service/pkg/rabbitmq/rabbitmq_common"
	"brokerage-service/pkg/rabbitmq/rabbitmq_consumer"
	"brokerage-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher
	viewsListener port.EventListenerPort
	apiServer     *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManager, err := rabbitmq_common.NewManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.EventsExchange,
		ExchangeType:             "direct",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
	}
	eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		appLogger.Error("Failed to create event producer", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	appLogger.Info("RabbitMQ Event Producer initialized.", nil)

	// --- 4. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	transactor, err := postgres_adapter.NewPgxTransactor(dbPool)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	propertyRepo, _ := postgres_adapter.NewPostgresPropertyRepository(dbPool)
	inquiryRepo, _ := postgres_adapter.NewPostgresInquiryRepository(dbPool)
	dealRepo, _ := postgres_adapter.NewPostgresDealRepository(dbPool)
	viewRepo, _ := postgres_adapter.NewPostgresViewRepository(dbPool)

	dealEventsAdapter, err := rabbitmq_adapter.NewRabbitMQDealEventsAdapter(eventProducer, constants.RoutingKeyDealEvents)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create deal events adapter: %w", err)
	}

	systemClock := clock_adapter.NewSystemClock()
	fileURLResolver := fileurl.NewPublicURLResolver(appConfig.FileStorage.PublicBaseURL)
	appLogger.Info("All persistence and messaging adapters initialized.", nil)

	// --- 5. USE CASES ---
	createDealUC := usecase.NewCreateDealUseCase(transactor, dealRepo, propertyRepo, inquiryRepo, dealEventsAdapter, systemClock)
	completeDealUC := usecase.NewCompleteDealUseCase(transactor, dealRepo, propertyRepo, dealEventsAdapter, systemClock)
	cancelDealUC := usecase.NewCancelDealUseCase(transactor, dealRepo, propertyRepo, inquiryRepo, dealEventsAdapter, systemClock)
	updateDealTermsUC := usecase.NewUpdateDealTermsUseCase(dealRepo)
	getDealByIDUC := usecase.NewGetDealByIDUseCase(dealRepo)
	createInquiryUC := usecase.NewCreateInquiryUseCase(inquiryRepo, propertyRepo, systemClock)
	assignInquiryUC := usecase.NewAssignInquiryUseCase(inquiryRepo)
	closeInquiryUC := usecase.NewCloseInquiryUseCase(inquiryRepo)
	getPropertyDetailsUC := usecase.NewGetPropertyDetailsUseCase(propertyRepo, fileURLResolver)
	recordViewUC := usecase.NewRecordPropertyViewUseCase(viewRepo, systemClock)
	getMostViewedUC := usecase.NewGetMostViewedUseCase(viewRepo)
	getViewStatsUC := usecase.NewGetViewStatsUseCase(viewRepo, propertyRepo)
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. ВХОДЯЩИЕ АДАПТЕРЫ ---
	viewsConsumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueuePropertyViews,
		RoutingKeyForBind:   constants.RoutingKeyPropertyViews,
		ExchangeNameForBind: constants.EventsExchange,
		PrefetchCount:       10,
		DurableQueue:        true,
		DeclareQueue:        true,
		ConsumerTag:         "property-views-adapter",
	}
	viewsListener, err := rabbitmq_adapter.NewViewEventsConsumerAdapter(viewsConsumerCfg, recordViewUC, baseLogger, connManager)
	if err != nil {
		appLogger.Error("Failed to initialize Property Views Listener", err, nil)
		eventProducer.Close()
		dbPool.Close()
		return nil, err
	}
	appLogger.Info("Property Views Listener initialized.", nil)

	// REST API Server
	dealHandler := rest.NewDealHandler(createDealUC, completeDealUC, cancelDealUC, updateDealTermsUC, getDealByIDUC)
	inquiryHandler := rest.NewInquiryHandler(createInquiryUC, assignInquiryUC, closeInquiryUC)
	propertyHandler := rest.NewPropertyHandler(getPropertyDetailsUC, recordViewUC)
	analyticsHandler := rest.NewAnalyticsHandler(getMostViewedUC, getViewStatsUC)
	apiServer := rest.NewServer(appConfig.Rest.PORT, appConfig.Rest.AllowedOrigins, dealHandler, inquiryHandler, propertyHandler, analyticsHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	// --- 7. СБОРКА ПРИЛОЖЕНИЯ ---
	application := &App{
		config:        appConfig,
		dbPool:        dbPool,
		connManager:   connManager,
		eventProducer: eventProducer,
		viewsListener: viewsListener,
		apiServer:     apiServer,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Единый контекст приложения для graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.viewsListener != nil {
			if err := a.viewsListener.Close(); err != nil {
				a.logger.Error("Error closing property views listener", err, nil)
			}
		}
		if a.eventProducer != nil {
			if err := a.eventProducer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}
		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
			}
		}
		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				log.Printf("App: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	consumerErrors := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": "Property Views Listener"})
		listenerLogger.Info("Starting listener...", nil)

		if err := a.viewsListener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			consumerErrors <- fmt.Errorf("property views listener error: %w", err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
	case err := <-consumerErrors:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
