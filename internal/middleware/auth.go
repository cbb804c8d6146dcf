// Package middleware carries the pre-onboarding specific HTTP middleware:
// shared-secret header auth, request/response audit logging and panic
// recovery. Generic concerns (trace ids) live in common/middleware.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crisil-hrops/preonboarding/internal/apierr"
	"github.com/crisil-hrops/preonboarding/internal/metrics"
)

// AuthConfig holds the expected header names and values for the static
// shared-secret check.
type AuthConfig struct {
	TokenHeader         string
	CompanyCodeHeader   string
	ExpectedToken       string
	ExpectedCompanyCode string
}

type companyCodeKey struct{}

// GetCompanyCode returns the authenticated company code header value, the
// trusted creator identity for stored records.
func GetCompanyCode(ctx context.Context) string {
	if v, ok := ctx.Value(companyCodeKey{}).(string); ok {
		return v
	}
	return ""
}

// RequireAuth validates the token and company-code headers on every request.
// The token comparison is case-sensitive; the company code comparison is
// case-insensitive. Missing headers are reported with REQUIRED, mismatched
// ones with INVALID, one field error per offending header.
func RequireAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(cfg.TokenHeader)
			company := r.Header.Get(cfg.CompanyCodeHeader)

			var missing []apierr.FieldError
			if strings.TrimSpace(token) == "" {
				missing = append(missing, apierr.FieldError{
					Field:     cfg.TokenHeader,
					ErrorCode: apierr.ErrCodeRequired,
					Message:   cfg.TokenHeader + " header is required.",
				})
			}
			if strings.TrimSpace(company) == "" {
				missing = append(missing, apierr.FieldError{
					Field:     cfg.CompanyCodeHeader,
					ErrorCode: apierr.ErrCodeRequired,
					Message:   cfg.CompanyCodeHeader + " header is required.",
				})
			}
			if len(missing) > 0 {
				metrics.AuthFailuresTotal.Inc()
				apierr.WriteError(w, r.Context(), apierr.CodeUnauthorized, apierr.MsgMissingAuth, missing)
				return
			}

			var invalid []apierr.FieldError
			if token != cfg.ExpectedToken {
				invalid = append(invalid, apierr.FieldError{
					Field:     cfg.TokenHeader,
					ErrorCode: apierr.ErrCodeInvalid,
					Message:   "Invalid " + cfg.TokenHeader + ".",
				})
			}
			if !strings.EqualFold(company, cfg.ExpectedCompanyCode) {
				invalid = append(invalid, apierr.FieldError{
					Field:     cfg.CompanyCodeHeader,
					ErrorCode: apierr.ErrCodeInvalid,
					Message:   "Invalid " + cfg.CompanyCodeHeader + ".",
				})
			}
			if len(invalid) > 0 {
				metrics.AuthFailuresTotal.Inc()
				apierr.WriteError(w, r.Context(), apierr.CodeUnauthorized, apierr.MsgInvalidAuth, invalid)
				return
			}

			ctx := context.WithValue(r.Context(), companyCodeKey{}, company)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
