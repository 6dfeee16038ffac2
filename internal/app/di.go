// Package app provides the dependency injection container that assembles the
// attendance service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"gocloud.dev/docstore"

	attendanceHTTP "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/http"
	attendanceService "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/service"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	authService "github.com/aru-nika-08/attendance-tracking-system/internal/auth/service"
	"github.com/aru-nika-08/attendance-tracking-system/internal/config"
	"github.com/aru-nika-08/attendance-tracking-system/internal/database"
	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	"github.com/aru-nika-08/attendance-tracking-system/internal/http"
	"github.com/aru-nika-08/attendance-tracking-system/internal/metrics"
	qrHTTP "github.com/aru-nika-08/attendance-tracking-system/internal/qr/http"
	qrService "github.com/aru-nika-08/attendance-tracking-system/internal/qr/service"
	qrUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	config *config.Config

	// ctx bounds background work started by components; Shutdown cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	redisClient     *redis.Client
	collection      *docstore.Collection
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// QR tokens and scan sessions
	signer         qrService.Signer
	tokenCodec     qrService.TokenCodec
	randomSource   qrService.RandomSource
	kmsService     qrService.KMSService
	signingSecret  []byte
	tokenIssuer    qrUseCase.TokenIssuer
	tokenVerifier  qrUseCase.TokenVerifier
	sessionStore   qrUseCase.SessionStore
	sessionSweeper qrUseCase.SessionSweeper

	// Attendance
	attendanceRepository       attendanceUseCase.AttendanceRepository
	attendanceRecordRepository attendanceUseCase.AttendanceRecordRepository
	attendanceWriter           attendanceUseCase.AttendanceWriter
	faceScorer                 attendanceService.FaceScorer
	attendanceGate             attendanceUseCase.AttendanceGate
	attendanceUseCase          attendanceUseCase.AttendanceUseCase

	// HTTP
	principalVerifier authService.PrincipalVerifier
	qrHandler         *qrHTTP.QRHandler
	sessionHandler    *attendanceHTTP.SessionHandler
	faceHandler       *attendanceHTTP.FaceHandler
	attendanceHandler *attendanceHTTP.AttendanceHandler
	httpServer        *http.Server
	metricsServer     *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                             sync.Mutex
	loggerInit                     sync.Once
	dbInit                         sync.Once
	txManagerInit                  sync.Once
	redisClientInit                sync.Once
	collectionInit                 sync.Once
	metricsProviderInit            sync.Once
	businessMetricsInit            sync.Once
	signerInit                     sync.Once
	tokenCodecInit                 sync.Once
	randomSourceInit               sync.Once
	kmsServiceInit                 sync.Once
	signingSecretInit              sync.Once
	tokenIssuerInit                sync.Once
	tokenVerifierInit              sync.Once
	sessionStoreInit               sync.Once
	sessionSweeperInit             sync.Once
	attendanceRepositoryInit       sync.Once
	attendanceRecordRepositoryInit sync.Once
	attendanceWriterInit           sync.Once
	faceScorerInit                 sync.Once
	attendanceGateInit             sync.Once
	attendanceUseCaseInit          sync.Once
	principalVerifierInit          sync.Once
	qrHandlerInit                  sync.Once
	sessionHandlerInit             sync.Once
	faceHandlerInit                sync.Once
	attendanceHandlerInit          sync.Once
	httpServerInit                 sync.Once
	metricsServerInit              sync.Once
	initErrors                     map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured with the log level from configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// storeError records an initialization error under key.
func (c *Container) storeError(key string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[key] = err
}

// loadError returns the initialization error recorded under key.
func (c *Container) loadError(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[key]
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		var err error
		if c.db, err = c.initDB(); err != nil {
			c.storeError("db", err)
		}
	})
	if err := c.loadError("db"); err != nil {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.storeError("txManager", fmt.Errorf("failed to get database for tx manager: %w", err))
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err := c.loadError("txManager"); err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.storeError("metricsProvider", fmt.Errorf("failed to create metrics provider: %w", err))
			return
		}
		c.metricsProvider = provider
	})
	if err := c.loadError("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.storeError("businessMetrics", err)
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.storeError("businessMetrics", fmt.Errorf("failed to create business metrics: %w", err))
			return
		}
		c.businessMetrics = bm
	})
	if err := c.loadError("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its router set up.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		var err error
		if c.httpServer, err = c.initHTTPServer(); err != nil {
			c.storeError("httpServer", err)
		}
	})
	if err := c.loadError("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.storeError("metricsServer", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err := c.loadError("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown releases every initialized resource, servers first.
func (c *Container) Shutdown(ctx context.Context) error {
	c.cancel()

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}

	if c.collection != nil {
		if err := c.collection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("docstore close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return apperrors.Join(errs...)
}

// initLogger creates a structured JSON logger at the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// PrincipalVerifier returns the bearer token verifier.
func (c *Container) PrincipalVerifier() authService.PrincipalVerifier {
	c.principalVerifierInit.Do(func() {
		c.principalVerifier = authService.NewJWTVerifier(
			[]byte(c.config.AuthJWTSecret),
			c.config.AuthAdminEmailMarker,
		)
	})
	return c.principalVerifier
}

// initHTTPServer creates the API server and mounts every handler.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	qrHandler, err := c.QRHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get qr handler for http server: %w", err)
	}

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get session handler for http server: %w", err)
	}

	faceHandler, err := c.FaceHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get face handler for http server: %w", err)
	}

	attendanceHandler, err := c.AttendanceHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(
		c.ctx,
		c.config,
		http.Handlers{
			QR:         qrHandler,
			Session:    sessionHandler,
			Face:       faceHandler,
			Attendance: attendanceHandler,
		},
		c.PrincipalVerifier(),
		provider,
	)

	return server, nil
}
