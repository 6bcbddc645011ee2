package middleware

import (
	"net/http"

	"github.com/mssola/useragent"

	"member-gateway/pkg/requestcontext"
)

// Device parses the User-Agent header and records the client platform in the
// request context. Login audit events pick it up for forensics.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.UserAgent())
		platform := ua.Platform()
		if name, _ := ua.Browser(); name != "" {
			if platform != "" {
				platform = platform + "/" + name
			} else {
				platform = name
			}
		}
		if platform != "" {
			r = r.WithContext(requestcontext.WithDevicePlatform(r.Context(), platform))
		}
		next.ServeHTTP(w, r)
	})
}
