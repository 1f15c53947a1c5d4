package middleware

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// gameWriter records what a game handler answered.
type gameWriter struct {
	http.ResponseWriter
	status   int
	written  int
	upgraded bool
}

func (w *gameWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *gameWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// Hijack lets the websocket upgrader take over /connect requests.
func (w *gameWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	w.upgraded = true
	return h.Hijack()
}

// Logging logs each request once it is handled, with the route the mux
// matched and the game session it addressed.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			gw := &gameWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(gw, r)

			attrs := []slog.Attr{
				slog.String("route", r.Pattern),
				slog.Int("status", gw.status),
				slog.Int("bytes", gw.written),
				slog.String("remoteAddr", r.RemoteAddr),
				slog.Int64("durationMs", time.Since(start).Milliseconds()),
			}
			if id := r.PathValue("id"); id != "" {
				attrs = append(attrs, slog.String("session", id))
			}
			if move := r.URL.Query().Get("move"); move != "" {
				attrs = append(attrs, slog.String("move", move))
			}
			if gw.upgraded {
				attrs = append(attrs, slog.Bool("websocket", true))
			}

			level := slog.LevelDebug
			if gw.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, r.Method+" "+r.URL.Path, attrs...)
		})
	}
}
