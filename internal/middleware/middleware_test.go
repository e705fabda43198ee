package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/logger"
	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestSessions(t *testing.T) {
	reg := session.NewRegistry(8, time.Hour, true, nil)
	defer reg.Close()

	var seen *session.Session
	handler := Sessions(reg, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, s.ID, logger.SessionIDFrom(r.Context()))
		seen = s
	}))

	t.Run("Creates session and cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookie, cookies[0].Name)
		assert.Equal(t, seen.ID, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("Reuses session from cookie", func(t *testing.T) {
		first := seen
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: first.ID})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Same(t, first, seen)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Replaces unknown session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEqual(t, "expired", seen.ID)
		assert.Len(t, w.Result().Cookies(), 1)
	})
}

func TestSessionFromEmptyContext(t *testing.T) {
	_, ok := SessionFrom(context.Background())
	assert.False(t, ok)
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Limit(1), 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(method, path, ip string) int {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = ip + ":4000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("General tier", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send("GET", "/", "10.0.0.1"))
		assert.Equal(t, http.StatusOK, send("GET", "/", "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, send("GET", "/", "10.0.0.1"))

		// other shoppers have their own bucket
		assert.Equal(t, http.StatusOK, send("GET", "/", "10.0.0.2"))
	})

	t.Run("Strict tier is separate", func(t *testing.T) {
		for i := 0; i < burstStrict; i++ {
			assert.Equal(t, http.StatusOK, send("POST", "/reviews", "10.0.0.3"))
		}
		assert.Equal(t, http.StatusTooManyRequests, send("POST", "/reviews", "10.0.0.3"))
		assert.Equal(t, http.StatusOK, send("GET", "/", "10.0.0.3"))
	})
}

func TestIdentity(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "ip:10.0.0.1", identity(req))

	// rotating client supplied values keeps the same bucket
	req.Header.Set("X-Device-ID", "dev")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "fresh"})
	req = req.WithContext(logger.WithSessionID(req.Context(), "sess"))
	assert.Equal(t, "ip:10.0.0.1", identity(req))

	req.RemoteAddr = "10.0.0.2"
	assert.Equal(t, "ip:10.0.0.2", identity(req))
}

func TestEvictIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, rate.Limit(1), 1)

	rl.getVisitor("old", rl.limit, rl.burst)
	rl.evictIdle(time.Now().Add(visitorIdle + time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.visitors)
}
