package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"member-gateway/pkg/requestcontext"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns a correlation ID to every request, honoring one supplied
// by an upstream proxy, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), id)
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
