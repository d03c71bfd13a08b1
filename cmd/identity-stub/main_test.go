package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer() *server {
	return &server{
		cfg: stubConfig{
			addr:     ":0",
			secret:   []byte("test-secret"),
			tokenTTL: time.Hour,
		},
		users:  devUsers(),
		logger: zap.NewNop(),
	}
}

func issueTestToken(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()

	body := `{"username": "` + username + `", "password": "` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response tokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.NotEmpty(t, response.AccessToken)
	return response.AccessToken
}

func TestHandleToken(t *testing.T) {
	s := newTestServer()
	handler := s.routes()

	t.Run("valid credentials issue a bearer token", func(t *testing.T) {
		body := `{"username": "manager", "password": "manager123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response tokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "bearer", response.TokenType)
		assert.NotEmpty(t, response.AccessToken)
	})

	t.Run("token carries the username and role claims", func(t *testing.T) {
		token := issueTestToken(t, handler, "cashier", "cashier123")

		claims := &stubClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return s.cfg.secret, nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		assert.Equal(t, "cashier", claims.Username)
		assert.Equal(t, "cashier", claims.UserRole)
		assert.NotEmpty(t, claims.ID)
		_, err = uuid.Parse(claims.Subject)
		assert.NoError(t, err)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		body := `{"username": "admin", "password": "wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail": "Incorrect username or password"}`, w.Body.String())
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		body := `{"username": "ghost", "password": "boo"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleMe(t *testing.T) {
	s := newTestServer()
	handler := s.routes()

	t.Run("issued token introspects to username and role", func(t *testing.T) {
		token := issueTestToken(t, handler, "staff", "staff123")

		req := httptest.NewRequest(http.MethodGet, "/auth/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username": "staff", "userRole": "staff"}`, w.Body.String())
	})

	t.Run("missing header returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/users/me", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail": "Not authenticated"}`, w.Body.String())
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/users/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail": "Could not validate credentials"}`, w.Body.String())
	})

	t.Run("expired token returns 401", func(t *testing.T) {
		now := time.Now()
		claims := stubClaims{
			Username: "admin",
			UserRole: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.New().String(),
				ID:        uuid.New().String(),
				IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.secret)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret returns 401", func(t *testing.T) {
		claims := stubClaims{
			Username: "admin",
			UserRole: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.New().String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLoadStubConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("IDENTITY_STUB_ADDR", "")
		t.Setenv("IDENTITY_STUB_SECRET", "")
		t.Setenv("IDENTITY_STUB_TOKEN_TTL", "")

		cfg, err := loadStubConfig()
		require.NoError(t, err)

		assert.Equal(t, ":4000", cfg.addr)
		assert.Equal(t, []byte("dev-identity-secret"), cfg.secret)
		assert.Equal(t, time.Hour, cfg.tokenTTL)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("IDENTITY_STUB_ADDR", ":4100")
		t.Setenv("IDENTITY_STUB_SECRET", "sekret")
		t.Setenv("IDENTITY_STUB_TOKEN_TTL", "30m")

		cfg, err := loadStubConfig()
		require.NoError(t, err)

		assert.Equal(t, ":4100", cfg.addr)
		assert.Equal(t, []byte("sekret"), cfg.secret)
		assert.Equal(t, 30*time.Minute, cfg.tokenTTL)
	})

	t.Run("invalid TTL", func(t *testing.T) {
		t.Setenv("IDENTITY_STUB_TOKEN_TTL", "soon")

		_, err := loadStubConfig()
		assert.Error(t, err)
	})

	t.Run("non-positive TTL", func(t *testing.T) {
		t.Setenv("IDENTITY_STUB_TOKEN_TTL", "-5m")

		_, err := loadStubConfig()
		assert.Error(t, err)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			assert.Equal(t, tt.want, bearerToken(req))
		})
	}
}
