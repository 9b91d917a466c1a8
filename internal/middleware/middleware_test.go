// internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/jewelry-atelier/internal/appstate"
	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	i18n.Initialize("en")
}

func perform(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionReusesHeaderID(t *testing.T) {
	registry := appstate.NewRegistry(time.Hour)
	r := gin.New()
	r.Use(Session(registry, 3600, false))
	r.GET("/", func(c *gin.Context) {
		store, ok := utils.GetStateStore(c)
		require.True(t, ok)
		store.ToggleTheme()
		c.String(http.StatusOK, utils.GetSessionID(c))
	})

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionIDHeader, id)
	w := perform(r, req)

	assert.Equal(t, id, w.Body.String())
	assert.Equal(t, id, w.Header().Get(SessionIDHeader))
	assert.Equal(t, "dark", string(registry.Get(id).Snapshot().Theme))
}

func TestSessionMintsIDAndReadsCookie(t *testing.T) {
	registry := appstate.NewRegistry(time.Hour)
	r := gin.New()
	r.Use(Session(registry, 3600, false))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, utils.GetSessionID(c))
	})

	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := w.Body.String()
	_, err := uuid.Parse(minted)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: minted})
	w = perform(r, req)
	assert.Equal(t, minted, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionIDHeader, "../../not-a-uuid")
	w = perform(r, req)
	assert.NotEqual(t, "../../not-a-uuid", w.Body.String())
}

func TestAdminRequired(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	r := gin.New()
	r.Use(I18nMiddleware("en"))
	r.GET("/open", AdminRequired(false), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/closed", AdminRequired(true), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, perform(r, httptest.NewRequest(http.MethodGet, "/open", nil)).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, httptest.NewRequest(http.MethodGet, "/closed", nil)).Code)

	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, perform(r, req).Code)

	token, _, err := utils.GenerateAdminToken(1)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, perform(r, req).Code)
}

func TestGeneralRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(GeneralRateLimit(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestI18nMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(I18nMiddleware("en"))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, utils.GetLangFromContext(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-TW,zh;q=0.9,en;q=0.8")
	assert.Equal(t, "zh_TW", perform(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-FR")
	assert.Equal(t, "en", perform(r, req).Body.String())
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	assert.Equal(t, "abc", perform(r, req).Header().Get(RequestIDHeader))
}
