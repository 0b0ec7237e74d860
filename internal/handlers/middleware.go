package handlers

import (
	"net/http"
	"strings"
	"time"

	"authgate"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by userIdentityMiddleware.
const (
	ctxUserID   = "userId"
	ctxUsername = "username"
)

const (
	msgMissingAuthHeader = "missing Authorization header"
	msgBadAuthHeader     = "invalid Authorization header format"
	msgBadToken          = "invalid or expired token"
)

func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, authgate.ErrorResponse{Message: msgMissingAuthHeader})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, authgate.ErrorResponse{Message: msgBadAuthHeader})
		return
	}

	claims, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		h.log.Debugw("auth_token_rejected", "err", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, authgate.ErrorResponse{Message: msgBadToken})
		return
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Next()
}

// requestLogger emits one structured line per request. Bodies are never logged.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
