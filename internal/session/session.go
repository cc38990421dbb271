// Package session identifies the anonymous shopper behind a request. The id
// scopes a cart and is passed explicitly to every cart and checkout call.
package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderName = "X-Session-ID"
	CookieName = "sid"

	contextKey = "session_id"
	// ten years; sessions do not expire or rotate
	cookieMaxAge = 10 * 365 * 24 * 60 * 60
)

// Resolve returns the caller's session id: a valid X-Session-ID header wins,
// then a valid sid cookie. Otherwise a new id is minted and set as a cookie.
func Resolve(c *gin.Context, secure bool) string {
	if id, ok := parse(c.GetHeader(HeaderName)); ok {
		return id
	}
	if raw, err := c.Cookie(CookieName); err == nil {
		if id, ok := parse(raw); ok {
			return id
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, cookieMaxAge, "/", "", secure, true)
	return id
}

func parse(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Middleware resolves the session once per request and exposes it through
// FromContext.
func Middleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, Resolve(c, secure))
		c.Next()
	}
}

// FromContext returns the id stored by Middleware, or "".
func FromContext(c *gin.Context) string {
	return c.GetString(contextKey)
}
