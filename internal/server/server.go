package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"hearth/internal/config"
	"hearth/internal/handler"
	"hearth/internal/middleware"
	"hearth/internal/session"
	"hearth/internal/store"
	"hearth/internal/view"
	ws "hearth/internal/websocket"
)

type Server struct {
	db         *sql.DB
	hub        *ws.Hub
	authH      *handler.AuthHandler
	dashboardH *handler.DashboardHandler
	taskH      *handler.TaskHandler
	pointsH    *handler.PointsHandler
	codec      *session.Codec
	limiter    *middleware.RateLimiter
	logger     *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}

	userStore := store.NewUserStore(db)
	taskStore := store.NewTaskStore(db)
	completionStore := store.NewCompletionStore(db)
	ledgerStore := store.NewLedgerStore(db)

	codec := session.NewCodec(cfg.SessionSecret)
	hub := ws.NewHub(logger.With("component", "websocket"))

	return &Server{
		db:         db,
		hub:        hub,
		authH:      handler.NewAuthHandler(userStore, codec, renderer, cfg.SessionSecure, logger.With("component", "auth")),
		dashboardH: handler.NewDashboardHandler(taskStore, completionStore, renderer, logger.With("component", "dashboard")),
		taskH:      handler.NewTaskHandler(taskStore, completionStore, hub, logger.With("component", "task")),
		pointsH:    handler.NewPointsHandler(ledgerStore, logger.With("component", "points")),
		codec:      codec,
		limiter:    middleware.NewRateLimiter(cfg.LoginRateLimit),
		logger:     logger,
	}, nil
}

// RateLimiter returns the login limiter for periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.limiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.Handle("POST /login", middleware.RateLimit(s.limiter, middleware.RealIP)(http.HandlerFunc(s.authH.Login)))
	outerMux.HandleFunc("GET /logout", s.authH.Logout)
	outerMux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /{$}", s.dashboardH.Dashboard)
	protectedMux.HandleFunc("POST /tasks", s.taskH.Create)
	protectedMux.HandleFunc("POST /tasks/{id}/complete", s.taskH.Complete)
	protectedMux.HandleFunc("GET /api/tasks", s.taskH.List)
	protectedMux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Deactivate)
	protectedMux.HandleFunc("GET /api/points", s.pointsH.Balance)
	protectedMux.HandleFunc("GET /api/leaderboard", s.pointsH.Leaderboard)
	protectedMux.HandleFunc("GET /ws", ws.Handler(s.hub))

	authMiddleware := middleware.RequireAuth(s.codec)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
