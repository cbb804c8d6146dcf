package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/crisil-hrops/preonboarding/common/logging"
	"github.com/crisil-hrops/preonboarding/internal/apierr"
)

// Recover converts panics in downstream handlers into a generic 500
// envelope so the connection is never dropped mid-response.
func Recover(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						logging.Path(r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
					apierr.WriteError(w, r.Context(), apierr.CodeInternalError, apierr.MsgInternal, []apierr.FieldError{{
						ErrorCode: apierr.ErrCodeInternal,
						Message:   "An unexpected error occurred. Use the trace_id to correlate server logs.",
					}})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
