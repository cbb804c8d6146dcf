package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// TraceIDKey is the context key for trace ids
type contextKey string

const TraceIDKey = contextKey("trace-id")

// TraceIDHeader is the HTTP header used to propagate trace ids.
const TraceIDHeader = "X-Request-ID"

// TraceID is a middleware that generates or propagates trace ids so every
// response can be correlated back to its request.
// It checks for an existing X-Request-ID header and generates a new UUID if
// not present. The trace id is added to the response header and stored in the
// request context.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		// Add to response header
		w.Header().Set(TraceIDHeader, traceID)

		// Add to request context
		ctx := context.WithValue(r.Context(), TraceIDKey, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTraceID extracts the trace id from the context.
// Returns empty string if not found.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}
