package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/GhaniKale/skincare-marketplace/internal/session"
	"github.com/GhaniKale/skincare-marketplace/pkg/global"
)

const AdminKeyHeader = "X-API-KEY"

// AdminKey admits requests whose X-API-KEY matches the bcrypt hash. With no
// hash configured every admin request is refused.
func AdminKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if hash == "" || key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, global.ErrorResponse("Admin access denied", []global.ValidationError{
				{Field: AdminKeyHeader, Message: "A valid admin API key is required", Code: "forbidden"},
			}))
			return
		}
		c.Next()
	}
}

// RequestTimeout bounds every downstream store call made with the request
// context.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
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

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if sid := session.FromContext(c); sid != "" {
			attrs = append(attrs, slog.String("session_id", sid))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", attrs...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}
