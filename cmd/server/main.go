package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coursedesk/courseapi/internal/config"
	"github.com/coursedesk/courseapi/internal/database"
	"github.com/coursedesk/courseapi/internal/handlers"
	"github.com/coursedesk/courseapi/internal/logging"
	"github.com/coursedesk/courseapi/internal/middleware"
	"github.com/coursedesk/courseapi/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
	}

	logger.Info("Starting course API server...")

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	userService := services.NewUserService(dbAdapter)
	courseService := services.NewCourseService(dbAdapter)
	authService := services.NewAuthService()
	emailChecker := services.NewEmailChecker(
		net.DefaultResolver,
		redisAdapter,
		cfg.EmailCheck.Timeout,
		cfg.EmailCheck.CacheTTL,
		cfg.EmailCheck.Stub,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	userHandler := handlers.NewUserHandler(userService, authService, emailChecker)
	courseHandler := handlers.NewCourseHandler(courseService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(userService, authService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Environment == "production")
	requestLogger := middleware.NewRequestLogger(logger)

	requireUser := authMiddleware.RequireUser

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth)
	mux.HandleFunc("GET /api", healthHandler.Root)
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("GET /api/ready", healthHandler.Ready)
	mux.HandleFunc("GET /api/live", healthHandler.Live)

	// User endpoints
	mux.Handle("GET /api/users", requireUser(http.HandlerFunc(userHandler.Me)))
	mux.HandleFunc("POST /api/users", userHandler.Create)

	// Course endpoints
	mux.HandleFunc("GET /api/courses", courseHandler.List)
	mux.HandleFunc("GET /api/courses/{id}", courseHandler.Get)
	mux.Handle("POST /api/courses", requireUser(http.HandlerFunc(courseHandler.Create)))
	mux.Handle("PUT /api/courses/{id}", requireUser(http.HandlerFunc(courseHandler.Update)))
	mux.Handle("DELETE /api/courses/{id}", requireUser(http.HandlerFunc(courseHandler.Delete)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)
	handler = middleware.RequestID(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
