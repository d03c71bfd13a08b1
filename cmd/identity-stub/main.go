// The identity-stub binary is a development stand-in for the external
// identity service the inventory API validates tokens against. It issues
// HS256 tokens for a fixed table of dev users and introspects them on the
// same wire contract the API consumes. Not for production use.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/upb/ims-inventory/backend/internal/observability"
	"go.uber.org/zap"
)

type stubConfig struct {
	addr     string
	secret   []byte
	tokenTTL time.Duration
}

func loadStubConfig() (stubConfig, error) {
	cfg := stubConfig{
		addr:     envOrDefault("IDENTITY_STUB_ADDR", ":4000"),
		secret:   []byte(envOrDefault("IDENTITY_STUB_SECRET", "dev-identity-secret")),
		tokenTTL: time.Hour,
	}

	if raw := os.Getenv("IDENTITY_STUB_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return stubConfig{}, fmt.Errorf("invalid IDENTITY_STUB_TOKEN_TTL %q: %w", raw, err)
		}
		if ttl <= 0 {
			return stubConfig{}, fmt.Errorf("IDENTITY_STUB_TOKEN_TTL must be positive, got %q", raw)
		}
		cfg.tokenTTL = ttl
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// devUser is a built-in account. IDs are generated per process; the API only
// ever looks at the role, so stability across restarts does not matter.
type devUser struct {
	ID       uuid.UUID
	Password string
	Role     string
}

func devUsers() map[string]devUser {
	return map[string]devUser{
		"admin":   {ID: uuid.New(), Password: "admin123", Role: "admin"},
		"manager": {ID: uuid.New(), Password: "manager123", Role: "manager"},
		"staff":   {ID: uuid.New(), Password: "staff123", Role: "staff"},
		"cashier": {ID: uuid.New(), Password: "cashier123", Role: "cashier"},
	}
}

// stubClaims is the token payload. The API reads username and userRole from
// the introspection response, so both ride along in the token itself.
type stubClaims struct {
	Username string `json:"username"`
	UserRole string `json:"userRole"`
	jwt.RegisteredClaims
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	Username string `json:"username"`
	UserRole string `json:"userRole"`
}

type server struct {
	cfg    stubConfig
	users  map[string]devUser
	logger *zap.Logger
}

func (s *server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, ok := s.users[req.Username]
	if !ok || user.Password != req.Password {
		s.logger.Warn("login rejected", zap.String("username", req.Username))
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	now := time.Now()
	claims := stubClaims{
		Username: req.Username,
		UserRole: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.secret)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	s.logger.Info("token issued",
		zap.String("username", req.Username),
		zap.String("role", user.Role),
	)
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: signed, TokenType: "bearer"})
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r)
	if raw == "" {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	claims := &stubClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.cfg.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !token.Valid {
		s.logger.Debug("token rejected", zap.Error(err))
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Username: claims.Username, UserRole: claims.UserRole})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Post("/auth/token", s.handleToken)
	r.Get("/auth/users/me", s.handleMe)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "identity-stub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadStubConfig()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(
		envOrDefault("LOG_LEVEL", "info"),
		envOrDefault("LOG_FORMAT", "json"),
	)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	s := &server{
		cfg:    cfg,
		users:  devUsers(),
		logger: logger,
	}

	srv := &http.Server{
		Addr:         cfg.addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("identity stub listening",
			zap.String("addr", cfg.addr),
			zap.Duration("token_ttl", cfg.tokenTTL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("identity stub stopped")
	return nil
}
