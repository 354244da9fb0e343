package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"habit_tracker/internal/models"
	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	principalCtx    = "principal"
	requestIDCtx    = "request_id"
	requestIDHeader = "X-Request-ID"
)

const (
	msgMissingAuth   = "Not authenticated"
	msgBadAuthHeader = "invalid Authorization header format"
	msgBadToken      = "Could not validate credentials"
)

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	abortWithDetail(c, http.StatusUnauthorized, detail)
}

// principalMiddleware resolves the bearer token to a user and stores it in
// the gin context for the protected handlers.
func (h *Handler) principalMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		unauthorized(c, msgMissingAuth)
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		unauthorized(c, msgBadAuthHeader)
		return
	}

	user, err := h.services.ResolvePrincipal(c.Request.Context(), strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Debugw("auth_token_rejected", "err", err, "request_id", requestID(c))
			unauthorized(c, msgBadToken)
			return
		}
		h.respondError(c, "auth_resolve_principal_failed", err)
		return
	}

	c.Set(principalCtx, user)
	c.Next()
}

// principal returns the user stored by principalMiddleware.
func principal(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(principalCtx)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// mustPrincipal aborts with 401 when the middleware did not run.
func mustPrincipal(c *gin.Context) (models.User, bool) {
	u, ok := principal(c)
	if !ok {
		unauthorized(c, msgMissingAuth)
	}
	return u, ok
}

// requestLogger tags every request with an id and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDCtx, id)
	c.Header(requestIDHeader, id)

	c.Next()

	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
		"request_id", id,
	)
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDCtx)
}
