package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/config"
	"github.com/jackzampolin/userboard/internal/home"
	"github.com/jackzampolin/userboard/internal/seed"
	"github.com/jackzampolin/userboard/internal/server/endpoints"
	"github.com/jackzampolin/userboard/internal/store"
	"github.com/jackzampolin/userboard/internal/svcctx"
)

// Server is the main Userboard HTTP server.
// It owns the SQLite store, opening it on start and closing it on shutdown.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	configMgr  *config.Manager
	logger     *slog.Logger
	logLevel   *slog.LevelVar
	dbPath     string
	seed       bool
	home       *home.Dir

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu         sync.RWMutex
	running    bool
	corsOrigin string
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// DatabasePath is the SQLite file to open
	DatabasePath string
	// CORSOrigin is sent as Access-Control-Allow-Origin (empty disables CORS)
	CORSOrigin string
	// Seed loads the sample users into an empty database on start
	Seed bool
	// Home is the userboard home directory, if any
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// LogLevel, when set, is updated when log_level changes in the config file
	LogLevel *slog.LevelVar
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabasePath == "" {
		return nil, errors.New("database path is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		configMgr:  cfg.ConfigManager,
		logger:     cfg.Logger,
		logLevel:   cfg.LogLevel,
		dbPath:     cfg.DatabasePath,
		seed:       cfg.Seed,
		home:       cfg.Home,
		corsOrigin: cfg.CORSOrigin,
	}

	// Watch for config changes
	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(s.reload)
	}

	s.endpointRegistry = endpoints.Registry()

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.logRequests(s.cors(s.withServices(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start opens the store and serves HTTP.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("opening database", "path", s.dbPath)
	st, err := store.Open(s.dbPath)
	if err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to open database: %w", err)
	}

	var startup *config.Config
	if s.configMgr != nil {
		startup = s.configMgr.Get()
	}
	configStore := config.NewStore(st.DB())
	if err := config.SeedEntries(ctx, configStore, config.StartupEntries(startup), s.logger); err != nil {
		st.Close()
		s.setNotRunning()
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	if s.seed {
		n, err := seed.Seed(ctx, st)
		if err != nil {
			st.Close()
			s.setNotRunning()
			return fmt.Errorf("failed to seed users: %w", err)
		}
		if n > 0 {
			s.logger.Info("seeded sample users", "count", n)
		}
	}

	s.mu.Lock()
	s.store = st
	s.services = &svcctx.Services{
		Store:         st,
		ConfigStore:   configStore,
		ConfigManager: s.configMgr,
		Logger:        s.logger,
		Home:          s.home,
	}
	s.mu.Unlock()

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown stops the HTTP server and closes the store.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.mu.Lock()
	st := s.store
	s.store = nil
	s.services = nil
	s.mu.Unlock()

	if st != nil {
		s.logger.Info("closing database")
		if err := st.Close(); err != nil {
			s.logger.Error("database close error", "error", err)
		}
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// reload applies the settings that can change without a restart.
func (s *Server) reload(c *config.Config) {
	s.mu.Lock()
	s.corsOrigin = c.Server.CORSOrigin
	s.mu.Unlock()

	if s.logLevel != nil {
		s.logLevel.Set(config.ParseLogLevel(c.LogLevel))
	}
	s.logger.Info("configuration reloaded", "cors_origin", c.Server.CORSOrigin, "log_level", c.LogLevel)
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Store returns the open store.
// Returns nil if the server hasn't started yet.
func (s *Server) Store() *store.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the full middleware chain, for tests that drive the
// server without a listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) currentServices() *svcctx.Services {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svcs := s.currentServices(); svcs != nil {
			ctx = svcctx.WithServices(ctx, svcs)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until the store is open.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcctx.StoreFrom(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
