package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	frontendKey  ctxKey = "frontend"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// EnsureRequestID returns ctx unchanged when it already carries a request ID,
// otherwise a child context with a fresh one.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestIDFromCtx(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}

// WithFrontend stores the name of the front-end driving the call ("tui", "web", "cli").
func WithFrontend(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, frontendKey, name)
}

// FrontendFromCtx extracts the front-end name. Returns an empty string if absent.
func FrontendFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(frontendKey).(string)
	return name
}
