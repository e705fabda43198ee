package middleware

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/logger"
	"storefront/internal/session"

	"go.uber.org/zap"
)

const SessionCookie = "shop_session-id"

type contextKey string

const sessionKey contextKey = "session"

// Sessions attaches the caller's storefront session to the request context,
// starting a new one (and setting the cookie) when none is live.
func Sessions(reg *session.Registry, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}

			s, created, err := reg.GetOrCreate(r.Context(), id)
			if err != nil {
				logger.FromCtx(r.Context()).Error("start session", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    s.ID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSession(r.Context(), s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey, s)
	return logger.WithSessionID(ctx, s.ID)
}

func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok
}
