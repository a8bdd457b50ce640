// Package server provides the HTTP REST API for the recruiting pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gftan/agentic-recruiter/internal/chat"
	"github.com/gftan/agentic-recruiter/internal/config"
	"github.com/gftan/agentic-recruiter/internal/db"
	"github.com/gftan/agentic-recruiter/internal/evaluation"
	"github.com/gftan/agentic-recruiter/internal/llm"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	logger      *zap.Logger
	llmClient   llm.Client
	agent       *evaluation.Agent
	chats       *chat.Manager
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	GeminiAPIKey   string
	Model          string
	ChatFlushDelay time.Duration
	Logger         *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.InitSchema(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(cfg.Model)
	}
	llmClient, err := llm.NewClient(context.Background(), llmConfig, cfg.GeminiAPIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := newServer(database, llmClient, passwordConfig, jwtConfig, cfg.ChatFlushDelay, logger)
	s.db = database

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // evaluation calls wait on the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires the handler graph without touching the network. Tests
// build servers through this with fake stores and clients.
func newServer(store Store, llmClient llm.Client, passwordConfig *config.PasswordConfig, jwtConfig *config.JWTConfig, flushDelay time.Duration, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:     store,
		logger:    logger,
		llmClient: llmClient,
		agent:     evaluation.New(llmClient, logger),
		chats:     chat.NewManager(store, logger, flushDelay),
	}

	s.userService = NewUserService(store, passwordConfig)
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	return s
}

// Handler builds the routed and middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth endpoints
	mux.HandleFunc("GET /api/auth/needs-setup", s.authHandler.NeedsSetup)
	mux.HandleFunc("POST /api/auth/setup", s.authHandler.Setup)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /api/auth/me", s.authHandler.Me)

	// Role endpoints
	mux.HandleFunc("GET /api/roles", s.handleListRoles)
	mux.HandleFunc("POST /api/roles", s.handleCreateRole)
	mux.HandleFunc("GET /api/roles/{role_id}", s.handleGetRole)
	mux.HandleFunc("PUT /api/roles/{role_id}", s.handleUpdateRole)
	mux.HandleFunc("DELETE /api/roles/{role_id}", s.handleDeleteRole)
	mux.HandleFunc("GET /api/roles/{role_id}/counts", s.handleRoleCounts)

	// Candidate endpoints
	mux.HandleFunc("GET /api/roles/{role_id}/candidates", s.handleListCandidates)
	mux.HandleFunc("POST /api/roles/{role_id}/candidates", s.handleCreateCandidate)
	mux.HandleFunc("GET /api/roles/{role_id}/candidates/{candidate_id}", s.handleGetCandidate)
	mux.HandleFunc("DELETE /api/roles/{role_id}/candidates/{candidate_id}", s.handleDeleteCandidate)
	mux.HandleFunc("PUT /api/roles/{role_id}/candidates/{candidate_id}/status", s.handleUpdateCandidateStatus)
	mux.HandleFunc("POST /api/roles/{role_id}/candidates/{candidate_id}/outreach", s.handleMarkOutreachSent)
	mux.HandleFunc("GET /api/roles/{role_id}/candidates/{candidate_id}/checklist", s.handleChecklistView)

	// Interview endpoints
	mux.HandleFunc("GET /api/roles/{role_id}/candidates/{candidate_id}/interview", s.handleGetInterview)
	mux.HandleFunc("PUT /api/roles/{role_id}/candidates/{candidate_id}/interview", s.handleSaveInterview)

	// Board drag resolution
	mux.HandleFunc("POST /api/roles/{role_id}/board/resolve", s.handleResolveDrop)

	// Evaluation chat
	mux.HandleFunc("POST /api/roles/{role_id}/candidates/evaluate", s.handleEvaluate)
	mux.HandleFunc("GET /api/roles/{role_id}/evaluation-chat", s.handleGetEvaluationChat)
	mux.HandleFunc("PUT /api/roles/{role_id}/evaluation-chat", s.handleSaveEvaluationChat)
	mux.HandleFunc("DELETE /api/roles/{role_id}/evaluation-chat", s.handleClearEvaluationChat)

	return s.withLogging(s.withCORS(s.withAuth(mux)))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Flush pending chat writes before the pool goes away.
	s.chats.Stop()

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			s.logger.Warn("failed to close LLM client", zap.Error(err))
		}
	}
	if s.db != nil {
		s.db.Close()
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// publicPaths are reachable without a bearer token.
var publicPaths = map[string]bool{
	"/health":               true,
	"/api/auth/needs-setup": true,
	"/api/auth/setup":       true,
	"/api/auth/login":       true,
}

type contextKey string

const userIDKey contextKey = "userID"

func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// withAuth requires a valid bearer token on every /api route except the
// auth bootstrap endpoints.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] || !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := s.jwtService.ValidateToken(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// pathUUID parses a path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Message: fmt.Sprintf("invalid %s", name)}
	}
	return id, nil
}
