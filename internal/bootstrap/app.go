package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/datastore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/payroll_report_sample/internal/config"
	"github.com/locvowork/payroll_report_sample/internal/database"
	"github.com/locvowork/payroll_report_sample/internal/domain"
	"github.com/locvowork/payroll_report_sample/internal/export"
	"github.com/locvowork/payroll_report_sample/internal/handler"
	"github.com/locvowork/payroll_report_sample/internal/logger"
	"github.com/locvowork/payroll_report_sample/internal/metrics"
	"github.com/locvowork/payroll_report_sample/internal/repository"
	"github.com/locvowork/payroll_report_sample/internal/service"
	"github.com/locvowork/payroll_report_sample/internal/trace"
)

type App struct {
	Echo    *echo.Echo
	DB      *sql.DB
	Metrics *metrics.Provider
	Service *service.PayrollService
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Initialize database connection
	dbConfig := database.Config{
		Host:            config.DefaultEnvConfig.DB_HOST,
		Port:            config.DefaultEnvConfig.DB_PORT,
		User:            config.DefaultEnvConfig.DB_USER,
		Password:        config.DefaultEnvConfig.DB_PASSWORD,
		DBName:          config.DefaultEnvConfig.DB_NAME,
		SSLMode:         config.DefaultEnvConfig.DB_SSL_MODE,
		MaxOpenConns:    config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db
	logger.InfoLog(ctx, "Database connection established successfully")

	if config.DefaultEnvConfig.METRICS_ENABLED {
		a.Metrics = metrics.Init()
	}

	// Trace sinks: the log sink always runs, the Elasticsearch sink only
	// when enabled. A sink that fails to come up is skipped, never fatal.
	sinks := []domain.TraceSink{trace.NewLogSink()}
	if config.DefaultEnvConfig.TRACE_ELASTIC_ENABLED {
		indexer, err := database.NewTraceIndexer(
			config.DefaultEnvConfig.ELASTIC_URL,
			config.DefaultEnvConfig.TRACE_INDEX,
		)
		if err != nil {
			logger.WarnLog(ctx, "Elasticsearch trace sink disabled: %v", err)
		} else {
			sinks = append(sinks, trace.NewElasticSink(indexer))
		}
	}

	// Optional summary archive.
	var archive service.SummaryArchive
	if projectID := config.DefaultEnvConfig.DATASTORE_PROJECT_ID; projectID != "" {
		dsClient, err := datastore.NewClient(ctx, projectID)
		if err != nil {
			logger.WarnLog(ctx, "Datastore summary archive disabled: %v", err)
		} else {
			archive = database.WrapPayrollArchive(dsClient)
		}
	}

	// Initialize dependencies
	payrollRepo := repository.NewPayrollRepository(db)
	payrollSvc := service.NewPayrollService(payrollRepo, trace.NewMultiSink(sinks...), archive, a.Metrics)
	a.Service = payrollSvc
	payrollHandler := handler.NewPayrollHandler(payrollSvc, export.DefaultLayout())

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(payrollHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(payrollHandler *handler.PayrollHandler) {
	a.Echo.GET("/departments", payrollHandler.ListDepartmentsHandler)
	a.Echo.GET("/departments/:id", payrollHandler.GetDepartmentHandler)
	a.Echo.GET("/departments/:id/employees", payrollHandler.ListDepartmentEmployeesHandler)
	a.Echo.GET("/departments/:id/payroll", payrollHandler.DepartmentPayrollHandler)
	a.Echo.GET("/departments/:id/payroll/export", payrollHandler.ExportDepartmentPayrollHandler)
	a.Echo.GET("/departments/:id/payroll/history", payrollHandler.PayrollHistoryHandler)

	if a.Metrics != nil {
		a.Echo.GET("/metrics", echo.WrapHandler(a.Metrics.Handler()))
	}
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
