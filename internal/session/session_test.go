package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var got string
	r := gin.New()
	r.Use(Middleware(false))
	r.GET("/", func(c *gin.Context) {
		got = FromContext(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, got
}

func TestNewSessionSetsCookie(t *testing.T) {
	w, id := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(id)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, cookieMaxAge, cookies[0].MaxAge)
}

func TestCookieIsReused(t *testing.T) {
	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: existing})

	w, id := serve(t, req)
	assert.Equal(t, existing, id)
	assert.Empty(t, w.Result().Cookies())
}

func TestHeaderWinsOverCookie(t *testing.T) {
	header := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderName, header)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: uuid.NewString()})

	_, id := serve(t, req)
	assert.Equal(t, header, id)
}

func TestInvalidIdsAreReplaced(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderName, "not-a-uuid")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "also-bad"})

	w, id := serve(t, req)
	assert.NotEqual(t, "not-a-uuid", id)
	assert.NotEqual(t, "also-bad", id)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Len(t, w.Result().Cookies(), 1)
}
