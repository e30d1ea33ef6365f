package services

import "context"

type contextKey string

const (
	reviewIDKey  contextKey = "review_id"
	componentKey contextKey = "component"
	requestIDKey contextKey = "request_id"
)

// WithReviewID annotates context with the review identifier.
func WithReviewID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, reviewIDKey, id)
}

// ReviewIDFromContext extracts the review identifier if present.
func ReviewIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(reviewIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithComponent annotates context with the component handling the call
// (rubric, detector, auditor).
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// ComponentFromContext returns the component name if present.
func ComponentFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(componentKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
