package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/niranjan1960/banos-dessert/internal/service"
)

const (
	sessionCookie = "session"
	ctxSessionID  = "sessionID"

	// HeaderSessionToken carries a freshly minted session token for
	// clients that cannot read cookies.
	HeaderSessionToken = "X-Session-Token"
	HeaderAPIKey       = "X-API-KEY"
)

// Sessions resolves the caller's session scope from a Bearer token or
// the session cookie, minting a new scope when neither is valid.
func Sessions(tokens *service.Tokens, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tok string
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			tok = strings.TrimPrefix(ah, "Bearer ")
		}
		if tok == "" {
			if v, err := c.Cookie(sessionCookie); err == nil {
				tok = v
			}
		}

		sid := ""
		if tok != "" {
			if v, err := tokens.Parse(tok); err == nil {
				sid = v
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			fresh, err := tokens.Issue(sid)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, fresh, int(tokens.TTL().Seconds()), "/", "", secureCookie, true)
			c.Header(HeaderSessionToken, fresh)
		}

		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string { return c.GetString(ctxSessionID) }

// AdminKey guards admin routes with a shared key. An empty key leaves
// them open.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := c.GetHeader(HeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}
		c.Next()
	}
}

// Timeout bounds the request context handed to services.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()))
	}
}
