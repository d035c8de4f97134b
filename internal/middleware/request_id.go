package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/talkboard/talkboard/internal/logger"
)

// RequestID stamps each request with an id for log correlation. An inbound
// X-Request-Id is trusted and propagated, otherwise a fresh uuid is used.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		logger.Log.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
