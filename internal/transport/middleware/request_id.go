package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ideaboard/api/pkg/ctxutil"
)

// RequestID adopts an inbound X-Request-Id or mints one, echoes it on
// the response, and stores it for the request logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		ctx := ctxutil.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
