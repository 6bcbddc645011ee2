// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them; services read them without
// importing net/http.
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	userIDKey      struct{}
	accountKey     struct{}
	requestIDKey   struct{}
	devicePlatKey  struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyUserID         = userIDKey{}
	ContextKeyAccount        = accountKey{}
	ContextKeyRequestID      = requestIDKey{}
	ContextKeyDevicePlatform = devicePlatKey{}
	ContextKeyRequestTime    = requestTimeKey{}
)

// UserID retrieves the authenticated user ID from the context. Returns zero
// if not set.
func UserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(ContextKeyUserID).(int64); ok {
		return id
	}
	return 0
}

// WithUserID injects a user ID into the context.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, id)
}

// Account retrieves the authenticated account name from the context.
func Account(ctx context.Context) string {
	if account, ok := ctx.Value(ContextKeyAccount).(string); ok {
		return account
	}
	return ""
}

// WithAccount injects an account name into the context.
func WithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, ContextKeyAccount, account)
}

// RequestID retrieves the correlation ID assigned by middleware.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a correlation ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// DevicePlatform retrieves the client platform parsed from the User-Agent.
func DevicePlatform(ctx context.Context) string {
	if p, ok := ctx.Value(ContextKeyDevicePlatform).(string); ok {
		return p
	}
	return ""
}

// WithDevicePlatform injects the client platform into the context.
func WithDevicePlatform(ctx context.Context, platform string) context.Context {
	return context.WithValue(ctx, ContextKeyDevicePlatform, platform)
}

// Now returns the request time if middleware recorded one, falling back to
// the wall clock. Tests inject fixed instants with WithTime.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed request time into the context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
