package httpapi

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"jobfilter-engine/internal/events"
)

// ShutdownHandler stops the engine when a loopback client presents Token.
type ShutdownHandler struct {
	Token    string
	Hub      *events.Hub
	Shutdown func(ctx context.Context) error
	Timeout  time.Duration
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// ServeHTTP answers POST /shutdown and then shuts the server down in the
// background so the response still reaches the caller.
func (h ShutdownHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
		return
	}
	if !isLoopback(r.RemoteAddr) {
		WriteError(w, r, http.StatusForbidden, CodeForbidden, "shutdown is only accepted from loopback")
		return
	}
	got := r.Header.Get("X-Shutdown-Token")
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.Token)) != 1 {
		WriteError(w, r, http.StatusUnauthorized, CodeUnauthorized, "bad shutdown token")
		return
	}

	zerolog.Ctx(r.Context()).Info().Msg("shutdown requested")
	if h.Hub != nil {
		h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.ShuttingDown, nil))
	}
	writeJSON(w, map[string]any{"ok": true})

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = h.Shutdown(ctx)
	}()
}
