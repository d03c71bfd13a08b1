package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/upb/ims-inventory/backend/services"
)

// maxResponseBytes bounds how much of an identity response is read.
const maxResponseBytes = 1 << 20

// Config holds configuration for the identity service client
type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration
}

// Client calls the external identity service to resolve the caller behind a
// bearer token. Every validation hits the service; results are never cached,
// so a role change takes effect on the next request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// userInfo is the identity service's description of the caller
type userInfo struct {
	Username string `json:"username"`
	UserRole string `json:"userRole"`
}

// NewClient creates a new identity service client
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = 5 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		logger: logger,
	}
}

// Validate resolves the caller behind the token and checks their role against
// allowedRoles. A non-2xx answer from the identity service is surfaced as an
// upstream error carrying the service's own status code; an unreachable
// service is surfaced as an unavailable error.
func (c *Client) Validate(ctx context.Context, token string, allowedRoles []string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/users/me", nil)
	if err != nil {
		return services.WrapInternal("failed to build identity request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("identity service unreachable", zap.Error(err))
		return services.WrapUnavailable("identity service unavailable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return services.WrapUnavailable("failed to read identity response", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := fmt.Sprintf("identity service error: %d", resp.StatusCode)
		if detail := upstreamDetail(body); detail != "" {
			message += " - " + detail
		}
		c.logger.Warn("identity service rejected request",
			zap.Int("status", resp.StatusCode),
		)
		return services.NewUpstreamError(resp.StatusCode, message)
	}

	var user userInfo
	if err := json.Unmarshal(body, &user); err != nil {
		c.logger.Error("identity service returned unreadable body", zap.Error(err))
		return services.WrapUnavailable("identity service returned an unreadable response", err)
	}

	for _, role := range allowedRoles {
		if user.UserRole == role {
			return nil
		}
	}

	c.logger.Debug("caller role not allowed",
		zap.String("username", user.Username),
		zap.String("role", user.UserRole),
	)
	return services.NewDomainError(
		services.ErrorTypeForbidden,
		fmt.Sprintf("access denied: required role not met, user has role '%s'", user.UserRole),
		nil,
	).WithDetail("role", user.UserRole)
}

// upstreamDetail extracts a human-readable detail from an identity error body.
// JSON bodies commonly carry the text under "detail", "message" or "error";
// anything else is returned as trimmed raw text.
func upstreamDetail(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if s, ok := payload[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return strings.TrimSpace(string(body))
}
