// Package apierr defines the response envelope and error taxonomy shared by
// the write and read paths. Every response, success or error, carries the
// same top-level shape: code, message, payload and trace_id.
package apierr

import (
	"context"
	"net/http"

	"github.com/crisil-hrops/preonboarding/common/httputil"
	"github.com/crisil-hrops/preonboarding/common/middleware"
)

// Envelope-level codes.
const (
	CodeSuccess          = "SUCCESS"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeDuplicateRequest = "DUPLICATE_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Field-level error codes used outside the validator rule set.
const (
	ErrCodeRequired  = "REQUIRED"
	ErrCodeInvalid   = "INVALID"
	ErrCodeDuplicate = "DUPLICATE"
	ErrCodeNotFound  = "NOT_FOUND"
	ErrCodeInternal  = "INTERNAL_ERROR"
)

// Fixed envelope messages. These are part of the accepted contract and must
// not drift between releases.
const (
	MsgValidationFailed = "One or more validation errors occurred."
	MsgDuplicate        = "A record already exists for the given external_candidate_id and crisil_offer_id."
	MsgNotFound         = "Record not found."
	MsgInternal         = "An unexpected error occurred."
	MsgMissingAuth      = "Missing authentication headers."
	MsgInvalidAuth      = "Invalid Token or CompanyCode."
)

// FieldError locates a single failed input field. Field is always a
// lower_snake_case dotted path into the wire schema.
type FieldError struct {
	Field     string `json:"field"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// ErrorResponse is the canonical error envelope.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
	TraceID string       `json:"trace_id"`
}

// SuccessResponse is the canonical success envelope.
type SuccessResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	TraceID string `json:"trace_id"`
}

// StatusFor maps an envelope code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeDuplicateRequest:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteSuccess writes a SUCCESS envelope carrying data.
func WriteSuccess(w http.ResponseWriter, ctx context.Context, message string, data any) {
	httputil.WriteJSON(w, http.StatusOK, SuccessResponse{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
		TraceID: middleware.GetTraceID(ctx),
	})
}

// WriteError writes an error envelope. Field paths are normalized to
// lower_snake_case so binding-stage and rule-stage errors converge on one
// naming scheme.
func WriteError(w http.ResponseWriter, ctx context.Context, code, message string, errs []FieldError) {
	normalized := make([]FieldError, len(errs))
	for i, fe := range errs {
		fe.Field = SnakeCasePath(fe.Field)
		normalized[i] = fe
	}
	httputil.WriteJSON(w, StatusFor(code), ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  normalized,
		TraceID: middleware.GetTraceID(ctx),
	})
}

// DuplicateErrors returns the fixed two-field error list reported when the
// (external_candidate_id, crisil_offer_id) uniqueness constraint is violated.
func DuplicateErrors() []FieldError {
	return []FieldError{
		{
			Field:     "external_candidate_id",
			ErrorCode: ErrCodeDuplicate,
			Message:   "external_candidate_id already used with this crisil_offer_id.",
		},
		{
			Field:     "crisil_offer_id",
			ErrorCode: ErrCodeDuplicate,
			Message:   "crisil_offer_id already used with this external_candidate_id.",
		},
	}
}
