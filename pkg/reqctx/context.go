package reqctx

import (
	"context"
	"time"
)

// ctxKey is a private type for context keys to prevent collisions
// with other packages. Each key is a distinct value of this type.
type ctxKey int

const (
	requestMetaKey ctxKey = iota
)

// RequestMeta contains request-scoped metadata set by HTTP middleware.
type RequestMeta struct {
	RequestID   string
	ClientIP    string
	UserAgent   string
	RequestedAt time.Time
}

// WithRequestMeta returns a new context with the request metadata set.
func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, meta)
}

// RequestMetaFromContext extracts request metadata from the context.
// Returns the metadata and true if present, nil and false otherwise.
func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	meta, ok := ctx.Value(requestMetaKey).(*RequestMeta)
	return meta, ok
}

// RequestIDFromContext extracts just the request ID from the context.
// Returns an empty string if no request metadata is present.
func RequestIDFromContext(ctx context.Context) string {
	if meta, ok := RequestMetaFromContext(ctx); ok {
		return meta.RequestID
	}
	return ""
}
