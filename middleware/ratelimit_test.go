package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rate, burst float64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimiter(rate, burst).RateLimit())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doPing(r *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitBurstThenReject(t *testing.T) {
	r := newLimitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		if code := doPing(r, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("Request %d within burst: status %d", i+1, code)
		}
	}
	if code := doPing(r, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("Request past burst: status %d, want 429", code)
	}
}

func TestRateLimitPerClient(t *testing.T) {
	r := newLimitedRouter(1, 1)

	if code := doPing(r, "10.0.0.1"); code != http.StatusOK {
		t.Fatalf("First client first request: status %d", code)
	}
	if code := doPing(r, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("First client second request: status %d, want 429", code)
	}
	// A different client has its own bucket.
	if code := doPing(r, "10.0.0.2"); code != http.StatusOK {
		t.Errorf("Second client first request: status %d, want 200", code)
	}
}

func TestRateLimitRefill(t *testing.T) {
	r := newLimitedRouter(50, 1)

	if code := doPing(r, "10.0.0.1"); code != http.StatusOK {
		t.Fatalf("First request: status %d", code)
	}
	if code := doPing(r, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("Immediate second request: status %d, want 429", code)
	}

	time.Sleep(50 * time.Millisecond)
	if code := doPing(r, "10.0.0.1"); code != http.StatusOK {
		t.Errorf("Request after refill window: status %d, want 200", code)
	}
}
