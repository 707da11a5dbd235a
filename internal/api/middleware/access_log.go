package middleware

import (
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// AccessLog logs one line per request with its status, size and duration.
// The wrapped writer keeps http.Hijacker, so websocket upgrades still work.
func AccessLog(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)
			scoped := logger.FromContextOrDefault(r.Context(), base)

			level := slog.LevelInfo
			if m.Code >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			scoped.Log(r.Context(), level, "handled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", m.Code),
				slog.Int64("bytes", m.Written),
				slog.Duration("duration", m.Duration))
		})
	}
}
