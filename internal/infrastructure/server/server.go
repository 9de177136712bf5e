package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/calcpad/backend/internal/api/http"
	"github.com/GriffinCanCode/calcpad/backend/internal/api/middleware"
	"github.com/GriffinCanCode/calcpad/backend/internal/api/ws"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/service"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/session"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/monitoring"
	calcProvider "github.com/GriffinCanCode/calcpad/backend/internal/providers/calculator"
	"github.com/GriffinCanCode/calcpad/backend/internal/providers/convert"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *service.Registry
	sessions *session.Manager
	rates    *convert.RateBook
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics

	janitorCtx  context.Context
	stopJanitor context.CancelFunc
	janitorOnce sync.Once
	janitorDone chan struct{}
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	mode := cfg.Calculator.Mode()
	logger.Info("Initializing calcpad server",
		zap.String("port", cfg.Server.Port),
		zap.Stringer("angle_mode", mode),
		zap.Duration("session_ttl", cfg.Calculator.SessionTTL),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	rates, err := loadRates(cfg.Rates, logger)
	if err != nil {
		return nil, err
	}

	evaluator := &expr.Evaluator{MaxLength: cfg.Calculator.MaxTape}

	serviceRegistry := service.NewRegistry()
	logger.Info("Registering service providers...")
	registerProviders(serviceRegistry, evaluator, mode, rates, logger)

	sessions := session.NewManager(evaluator, session.Options{
		DefaultMode: mode,
		TTL:         cfg.Calculator.SessionTTL,
		Logger:      logger,
	}).WithMetrics(metrics)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(middleware.Recovery(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := apihttp.NewHandlers(serviceRegistry, sessions, evaluator, mode, rates,
		apihttp.NewHandlerMetrics(metrics), logger)
	wsHandler := ws.NewHandler(sessions, metrics, logger)
	metricsAggregator := apihttp.NewMetricsAggregator(metrics, sessions, serviceRegistry)

	// Register routes
	handlers.Register(router)
	router.GET("/sessions/:id/stream", wsHandler.HandleConnection)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", metricsAggregator.GetAggregatedMetrics)

	s := &Server{
		router:   router,
		registry: serviceRegistry,
		sessions: sessions,
		rates:    rates,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,

		janitorDone: make(chan struct{}),
	}
	s.janitorCtx, s.stopJanitor = context.WithCancel(context.Background())
	s.http = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// loadRates seeds the rate book from the environment, then overlays the
// rates file when one is configured.
func loadRates(cfg config.RatesConfig, logger *logging.Logger) (*convert.RateBook, error) {
	seed := convert.Rates(cfg.Seed())
	if cfg.File != "" {
		fromFile, err := convert.LoadRatesFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load rates file: %w", err)
		}
		for code, v := range fromFile {
			seed[code] = v
		}
		logger.Info("Loaded exchange rates",
			zap.String("file", cfg.File),
			zap.Int("currencies", len(fromFile)))
	}
	return convert.NewRateBook(seed), nil
}

func registerProviders(registry *service.Registry, evaluator *expr.Evaluator, mode expr.AngleMode, rates *convert.RateBook, logger *logging.Logger) {
	providers := []service.Provider{
		calcProvider.NewProvider(evaluator, mode),
		convert.NewProvider(rates),
	}
	for _, p := range providers {
		def := p.Definition()
		if err := registry.Register(p); err != nil {
			logger.Warn("Failed to register provider", zap.String("service", def.ID), zap.Error(err))
			continue
		}
		logger.Info("Registered provider", zap.String("service", def.ID), zap.Int("tools", len(def.Tools)))
	}
}

// Handler returns the root handler: the router behind gzip compression.
// WebSocket upgrades bypass compression.
func (s *Server) Handler() http.Handler {
	compressed := gzhttp.GzipHandler(s.router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			s.router.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})
}

// Sessions returns the session manager
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Run starts the session janitor and the HTTP server. It returns nil once
// the server has been shut down.
func (s *Server) Run() error {
	s.janitorOnce.Do(func() {
		go func() {
			defer close(s.janitorDone)
			s.sessions.Run(s.janitorCtx, s.config.Calculator.SweepInterval)
		}()
	})

	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and stops
// the janitor
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("HTTP shutdown failed", zap.Error(err))
	}

	// Stop the janitor, or mark it done if Run never started it
	s.stopJanitor()
	s.janitorOnce.Do(func() { close(s.janitorDone) })
	<-s.janitorDone

	stats := s.sessions.Stats()
	s.logger.Info("Server stopped",
		zap.Int("sessions_active", stats.Active),
		zap.Int("sessions_created", stats.Created),
		zap.Int("sessions_expired", stats.Expired),
	)

	// Sync logger before exit
	_ = s.logger.Sync()
	return err
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
