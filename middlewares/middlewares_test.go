package middlewares

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/resteasy/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/login-user", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	return r
}

func hit(r *gin.Engine, target, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	now := time.Unix(1000, 0)

	assert.True(t, rl.allow("1.1.1.1", now))
	assert.True(t, rl.allow("1.1.1.1", now.Add(100*time.Millisecond)))
	assert.False(t, rl.allow("1.1.1.1", now.Add(200*time.Millisecond)))
	assert.True(t, rl.allow("2.2.2.2", now.Add(200*time.Millisecond)), "limits are per IP")
	assert.True(t, rl.allow("1.1.1.1", now.Add(1050*time.Millisecond)), "oldest request left the window")
}

func TestLoginLimiter(t *testing.T) {
	r := okEngine(NewLoginLimiter(2).Handler())

	assert.Equal(t, http.StatusOK, hit(r, "/login-user", "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, hit(r, "/login-user", "10.0.0.1:1001").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "/login-user", "10.0.0.1:1002").Code)
	assert.Equal(t, http.StatusOK, hit(r, "/login-user", "10.0.0.2:1000").Code)
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	now := time.Unix(1000, 0)

	for i := 0; i < 100; i++ {
		assert.True(t, rl.allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256), now))
	}
	assert.Len(t, rl.ips, 100)

	assert.True(t, rl.allow("1.1.1.1", now.Add(500*time.Millisecond)))
	assert.Len(t, rl.ips, 101, "clients inside the window are kept")

	assert.True(t, rl.allow("1.1.1.1", now.Add(1200*time.Millisecond)))
	assert.Len(t, rl.ips, 1)
	assert.Contains(t, rl.ips, "1.1.1.1")
}

func TestLoginLimiterDropsFullBuckets(t *testing.T) {
	l := NewLoginLimiter(2)
	now := time.Unix(1000, 0)

	assert.True(t, l.allow("10.0.0.1", now))
	assert.True(t, l.allow("10.0.0.1", now))
	assert.False(t, l.allow("10.0.0.1", now))
	assert.True(t, l.allow("10.0.0.2", now.Add(30*time.Second)))
	assert.Len(t, l.limiters, 2)

	// 10.0.0.1 has been idle long enough to refill; 10.0.0.2 has not.
	assert.True(t, l.allow("10.0.0.3", now.Add(time.Minute)))
	assert.Len(t, l.limiters, 2)
	assert.NotContains(t, l.limiters, "10.0.0.1")
	assert.Contains(t, l.limiters, "10.0.0.2")

	// A dropped client starts again with a full burst.
	assert.True(t, l.allow("10.0.0.1", now.Add(time.Minute)))
	assert.True(t, l.allow("10.0.0.1", now.Add(time.Minute)))
	assert.False(t, l.allow("10.0.0.1", now.Add(time.Minute)))
}

func TestSecurityHeaders(t *testing.T) {
	w := hit(okEngine(SecurityHeaders()), "/login-user", "10.0.0.1:1000")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestLoggerMiddlewareOmitsQuery(t *testing.T) {
	var buf bytes.Buffer
	utils.InfoLogger = logrus.New()
	utils.InfoLogger.SetOutput(&buf)
	t.Cleanup(utils.InitLogger)

	hit(okEngine(LoggerMiddleware()), "/login-user?username=alice&password=hunter2", "10.0.0.1:1000")

	out := buf.String()
	assert.Contains(t, out, "path=/login-user")
	assert.Contains(t, out, "status=200")
	assert.NotContains(t, out, "hunter2")
}
