package middleware

import (
	"net/http"
	"time"

	"member-gateway/pkg/requestcontext"
)

// Timestamp captures the wall clock once per request so every read within the
// request (age derivation, audit timestamps) sees the same instant.
func Timestamp(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
