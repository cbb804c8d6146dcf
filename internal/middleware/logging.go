package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/crisil-hrops/preonboarding/common/httputil"
	"github.com/crisil-hrops/preonboarding/common/logging"
)

// bodyCaptureLimit caps how much of a request or response body is echoed
// into the audit log.
const bodyCaptureLimit = 20000

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (cw *captureWriter) WriteHeader(status int) {
	cw.status = status
	cw.ResponseWriter.WriteHeader(status)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.status == 0 {
		cw.status = http.StatusOK
	}
	if cw.body.Len() < bodyCaptureLimit {
		remaining := bodyCaptureLimit - cw.body.Len()
		if len(b) <= remaining {
			cw.body.Write(b)
		} else {
			cw.body.Write(b[:remaining])
		}
	}
	return cw.ResponseWriter.Write(b)
}

// AuditLog logs one structured entry per request with the method, path,
// client ip, status, duration and truncated request/response bodies. The
// request body is re-buffered so downstream handlers can still read it.
func AuditLog(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var reqBody []byte
			if r.Body != nil {
				reqBody, _ = io.ReadAll(r.Body)
				r.Body.Close()
				r.Body = io.NopCloser(bytes.NewReader(reqBody))
			}

			cw := &captureWriter{ResponseWriter: w}
			next.ServeHTTP(cw, r)

			if cw.status == 0 {
				cw.status = http.StatusOK
			}
			logger.InfoContext(r.Context(), "request handled",
				logging.Method(r.Method),
				logging.Path(r.URL.Path),
				logging.IP(httputil.GetClientIP(r)),
				logging.Status(cw.status),
				logging.Duration(time.Since(start).Milliseconds()),
				slog.String("request_body", truncate(reqBody)),
				slog.String("response_body", truncate(cw.body.Bytes())),
			)
		})
	}
}

func truncate(b []byte) string {
	if len(b) > bodyCaptureLimit {
		return string(b[:bodyCaptureLimit]) + "...(truncated)"
	}
	return string(b)
}
