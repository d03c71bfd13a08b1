package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/upb/ims-inventory/backend/services"
	"github.com/upb/ims-inventory/backend/utils"
)

// TokenValidator resolves the caller behind a bearer token and checks their
// role against the allowed set. Implementations answer with domain errors so
// the middleware can map failures without knowing who validated the token.
type TokenValidator interface {
	Validate(ctx context.Context, token string, allowedRoles []string) error
}

// AuthMiddleware guards routes behind the identity service's role check
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// RequireRoles builds a middleware that admits only callers whose bearer
// token resolves to one of allowedRoles. A request without a token is
// rejected before the identity service is consulted.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			token := extractBearerToken(r)
			if token == "" {
				m.logger.Warn("missing bearer token",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path))
				_ = utils.WriteUnauthorized(w, "Missing or invalid authorization header")
				return
			}

			if err := m.validator.Validate(ctx, token, allowedRoles); err != nil {
				m.logger.Warn("token validation failed",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path),
					zap.Error(err))
				m.writeAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError maps a validation failure to its HTTP response. Statuses the
// identity service answered with are passed through unchanged.
func (m *AuthMiddleware) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case services.IsForbiddenError(err):
		_ = utils.WriteForbidden(w, services.ErrorMessage(err))
	case services.IsUpstreamError(err):
		status, ok := services.UpstreamStatus(err)
		if !ok {
			status = http.StatusBadGateway
		}
		_ = utils.WriteError(w, status, services.ErrorMessage(err), nil)
	case services.IsUnavailableError(err):
		_ = utils.WriteServiceUnavailable(w, services.ErrorMessage(err))
	case services.IsUnauthorizedError(err):
		_ = utils.WriteUnauthorized(w, services.ErrorMessage(err))
	default:
		m.logger.Error("unexpected token validation failure", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "An internal error occurred")
	}
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
