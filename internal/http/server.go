// Package http provides the HTTP server, its router and the probe endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	attendanceHTTP "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/http"
	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
	authHTTP "github.com/aru-nika-08/attendance-tracking-system/internal/auth/http"
	authService "github.com/aru-nika-08/attendance-tracking-system/internal/auth/service"
	"github.com/aru-nika-08/attendance-tracking-system/internal/config"
	"github.com/aru-nika-08/attendance-tracking-system/internal/database"
	"github.com/aru-nika-08/attendance-tracking-system/internal/metrics"
	qrHTTP "github.com/aru-nika-08/attendance-tracking-system/internal/qr/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	QR         *qrHTTP.QRHandler
	Session    *attendanceHTTP.SessionHandler
	Face       *attendanceHTTP.FaceHandler
	Attendance *attendanceHTTP.AttendanceHandler
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the router. ctx bounds background work started by
// middleware such as the rate limiter cleanup. metricsProvider may be nil.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	principalVerifier authService.PrincipalVerifier,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")
	api.Use(authHTTP.AuthenticationMiddleware(principalVerifier, s.logger))

	// Anonymous scan endpoints
	scan := api.Group("")
	if cfg.RateLimitScanEnabled {
		scan.Use(authHTTP.ScanRateLimitMiddleware(
			ctx,
			cfg.RateLimitScanRequestsPerSec,
			cfg.RateLimitScanBurst,
			s.logger,
		))
	}
	scan.POST("/validate-qr", handlers.Session.ValidateQRHandler)
	scan.POST("/verify-face", handlers.Face.VerifyFaceHandler)
	scan.POST("/attendance/mark", handlers.Attendance.MarkHandler)
	scan.GET("/attendance/scan", handlers.Attendance.ScanHandler)

	// Scan session lifecycle
	api.GET("/session/:sessionId", handlers.Session.GetSessionHandler)
	api.DELETE("/session/:sessionId", handlers.Session.DeleteSessionHandler)
	api.GET("/face-status/:sessionId", handlers.Session.FaceStatusHandler)

	// Student self service, admins may act for anyone
	authenticated := api.Group("")
	authenticated.Use(authHTTP.RequireAuthentication(s.logger))
	authenticated.POST("/attendance", handlers.Attendance.CreateHandler)
	authenticated.GET("/attendance/student/:email", handlers.Attendance.ListByStudentHandler)
	authenticated.GET("/attendance/student/:email/stats", handlers.Attendance.StudentStatsHandler)
	authenticated.GET("/student-attendance", handlers.Attendance.StudentRecordsHandler)

	admin := api.Group("")
	admin.Use(authHTTP.RequireRole(authDomain.RoleAdmin, s.logger))
	admin.POST("/generate-qr", handlers.QR.GenerateHandler)
	admin.GET("/attendance/all", handlers.Attendance.ListHandler)
	admin.GET("/attendance/class", handlers.Attendance.ListByClassHandler)
	admin.GET("/list-attendance", handlers.Attendance.ListRecordsHandler)
	admin.GET("/attendance-stats", handlers.Attendance.RecordStatsHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness, which requires a reachable database.
func (s *Server) readinessHandler(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), s.db, readinessTimeout); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
