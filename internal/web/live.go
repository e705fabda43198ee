package web

import (
	"net/http"
	"time"

	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/store"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Live handles GET /live. It upgrades to a websocket and pushes the session
// state each time it changes, so every open tab re-renders. Nothing is sent
// until the first change.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, r, errNoSession)
		return
	}

	// watch before the handshake completes so no change is missed
	changed := make(chan struct{}, 1)
	var cancel func()
	err := s.Do(func(a *store.App) error {
		// Notify fires while the session is locked, so only signal here
		cancel = a.Changed().Watch(func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		logger.FromCtx(r.Context()).Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := logger.FromCtx(r.Context())

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-changed:
			var view store.View
			if err := s.Do(func(a *store.App) error {
				view = a.Snapshot()
				return nil
			}); err != nil {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(response{Data: view}); err != nil {
				log.Debug("live client gone", zap.Error(err))
				return
			}
		}
	}
}
