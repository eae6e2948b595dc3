package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskflow-app/taskflow/config"
	"github.com/taskflow-app/taskflow/internal/handlers"
	"github.com/taskflow-app/taskflow/internal/logging"
	"github.com/taskflow-app/taskflow/internal/services"
	"github.com/taskflow-app/taskflow/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	log := logging.New()

	userRepo := store.NewUserRepository(cfg.DataDir, log)
	taskRepo := store.NewTaskRepository(cfg.DataDir, log)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo,
		services.WithOwnershipEnforcement(cfg.EnforceOwnership))
	reportService := services.NewReportService(taskRepo, userRepo, cfg.ExportDir)

	authMiddleware := handlers.RequireAuth(cfg.JWTSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, cfg.JWTSecret, cfg.TokenTTL)
	})
	router.Route("/tasks", func(r chi.Router) {
		handlers.TaskRouter(r, taskService, userService, authMiddleware)
	})
	router.Route("/reports", func(r chi.Router) {
		handlers.ReportRouter(r, reportService, userService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}
