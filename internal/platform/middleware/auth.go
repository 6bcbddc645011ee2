package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	dErrors "member-gateway/pkg/domain-errors"
	"member-gateway/pkg/platform/httputil"
	"member-gateway/pkg/requestcontext"
)

// TokenValidator is the slice of the token service the middleware needs.
type TokenValidator interface {
	Validate(token string) bool
	Account(token string) (string, error)
	UserID(token string) (int64, error)
}

// RequireAuth rejects requests without a valid bearer token and seeds the
// request context with the token's identity claims.
func RequireAuth(tokens TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			if !tokens.Validate(token) {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			// Claims extraction only happens after Validate succeeded, so
			// failures here mean the token changed between calls.
			account, err := tokens.Account(token)
			if err != nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}
			userID, err := tokens.UserID(token)
			if err != nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx = requestcontext.WithAccount(ctx, account)
			ctx = requestcontext.WithUserID(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards the admin surface with HTTP basic auth. Constant-time
// comparison avoids timing side channels on the credentials.
func RequireAdmin(account, password string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			accountOK := subtle.ConstantTimeCompare([]byte(user), []byte(account)) == 1
			passwordOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
			if !ok || !accountOK || !passwordOK {
				logger.WarnContext(r.Context(), "unauthorized admin access",
					"request_id", requestcontext.RequestID(r.Context()),
					"remote_addr", r.RemoteAddr,
				)
				w.Header().Set("WWW-Authenticate", `Basic realm="member-gateway admin"`)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin credentials required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
