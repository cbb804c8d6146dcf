// Package handlers exposes the pre-onboarding HTTP surface. Every response
// body, success or failure, uses the apierr envelope.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/crisil-hrops/preonboarding/common/httputil"
	"github.com/crisil-hrops/preonboarding/common/logging"
	"github.com/crisil-hrops/preonboarding/internal/apierr"
	"github.com/crisil-hrops/preonboarding/internal/metrics"
	"github.com/crisil-hrops/preonboarding/internal/middleware"
	"github.com/crisil-hrops/preonboarding/internal/models"
	"github.com/crisil-hrops/preonboarding/internal/repository"
	"github.com/crisil-hrops/preonboarding/internal/service"
	"github.com/crisil-hrops/preonboarding/internal/validator"
)

// StatusClientClosedRequest is the nginx convention for a client that went
// away before the response was written.
const StatusClientClosedRequest = 499

// maxRequestBody bounds how much of a create payload is read. Candidate
// records are small; anything past this is abuse.
const maxRequestBody = 1 << 20

// Pinger is implemented by repositories that can report backend liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	service *service.Service
	repo    repository.Repository
	logger  *logging.Logger
}

func NewHandler(svc *service.Service, repo repository.Repository, logger *logging.Logger) *Handler {
	return &Handler{
		service: svc,
		repo:    repo,
		logger:  logger,
	}
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready handles GET /readyz. It fails when the record store is unreachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.repo.(Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "readiness check failed", logging.Error(err))
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Create handles POST /api/v1/pre-onboarding.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawBody, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		h.countAndWriteError(w, ctx, "create", apierr.CodeValidationFailed, apierr.MsgValidationFailed, []apierr.FieldError{{
			ErrorCode: apierr.ErrCodeInvalid,
			Message:   "Request body could not be read.",
		}})
		return
	}

	var req models.CandidateRecord
	if err := json.Unmarshal(rawBody, &req); err != nil {
		h.countAndWriteError(w, ctx, "create", apierr.CodeValidationFailed, apierr.MsgValidationFailed, bindingErrors(err))
		return
	}

	data, violations, err := h.service.Create(ctx, &req, middleware.GetCompanyCode(ctx), rawBody)
	switch {
	case err != nil:
		h.serviceError(w, r, "create", err)
	case len(violations) > 0:
		metrics.ValidationFailuresTotal.Inc()
		h.countAndWriteError(w, ctx, "create", apierr.CodeValidationFailed, apierr.MsgValidationFailed, toFieldErrors(violations))
	default:
		h.logger.InfoContext(ctx, "record created", logging.RecordID(data.ID))
		metrics.RequestsTotal.WithLabelValues("create", strconv.Itoa(http.StatusOK)).Inc()
		apierr.WriteSuccess(w, ctx, "Pre-onboarding request saved successfully.", data)
	}
}

// GetByID handles GET /api/v1/pre-onboarding/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/pre-onboarding/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.countAndWriteError(w, ctx, "get", apierr.CodeValidationFailed, apierr.MsgValidationFailed, []apierr.FieldError{{
			Field:     "id",
			ErrorCode: apierr.ErrCodeInvalid,
			Message:   "id must be a valid number.",
		}})
		return
	}

	rec, err := h.service.Get(ctx, id)
	if err != nil {
		h.serviceError(w, r, "get", err)
		return
	}

	metrics.RequestsTotal.WithLabelValues("get", strconv.Itoa(http.StatusOK)).Inc()
	apierr.WriteSuccess(w, ctx, "Record fetched successfully.", rec)
}

// Search handles GET /api/v1/pre-onboarding.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	req := &models.SearchRequest{
		ExternalCandidateID: strings.TrimSpace(q.Get("external_candidate_id")),
		CrisilOfferID:       strings.TrimSpace(q.Get("crisil_offer_id")),
		Page:                httputil.ParseIntParam(q.Get("page"), service.DefaultPage),
		PageSize:            httputil.ParseIntParam(q.Get("pageSize"), service.DefaultPageSize),
	}

	var fieldErrs []apierr.FieldError
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			fieldErrs = append(fieldErrs, apierr.FieldError{
				Field:     "from",
				ErrorCode: apierr.ErrCodeInvalid,
				Message:   "from must be in dd-MM-yyyy format.",
			})
		} else {
			t := d.Time
			req.From = &t
		}
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			fieldErrs = append(fieldErrs, apierr.FieldError{
				Field:     "to",
				ErrorCode: apierr.ErrCodeInvalid,
				Message:   "to must be in dd-MM-yyyy format.",
			})
		} else {
			t := d.Time
			req.To = &t
		}
	}
	if len(fieldErrs) > 0 {
		h.countAndWriteError(w, ctx, "search", apierr.CodeValidationFailed, apierr.MsgValidationFailed, fieldErrs)
		return
	}

	data, err := h.service.Search(ctx, req)
	if err != nil {
		h.serviceError(w, r, "search", err)
		return
	}

	metrics.RequestsTotal.WithLabelValues("search", strconv.Itoa(http.StatusOK)).Inc()
	apierr.WriteSuccess(w, ctx, "Search completed successfully.", data)
}

// serviceError maps pipeline errors onto the envelope. Client disconnects
// get the bare 499 status with no body.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, context.Canceled):
		h.logger.InfoContext(ctx, "client closed request", logging.Path(r.URL.Path))
		metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(StatusClientClosedRequest)).Inc()
		w.WriteHeader(StatusClientClosedRequest)
	case errors.Is(err, repository.ErrDuplicate):
		metrics.DuplicateRequestsTotal.Inc()
		h.countAndWriteError(w, ctx, endpoint, apierr.CodeDuplicateRequest, apierr.MsgDuplicate, apierr.DuplicateErrors())
	case errors.Is(err, repository.ErrNotFound):
		h.countAndWriteError(w, ctx, endpoint, apierr.CodeNotFound, apierr.MsgNotFound, []apierr.FieldError{{
			Field:     "id",
			ErrorCode: apierr.ErrCodeNotFound,
			Message:   "No record found for the given id.",
		}})
	default:
		h.logger.ErrorContext(ctx, "request failed", logging.Path(r.URL.Path), logging.Error(err))
		h.countAndWriteError(w, ctx, endpoint, apierr.CodeInternalError, apierr.MsgInternal, []apierr.FieldError{{
			ErrorCode: apierr.ErrCodeInternal,
			Message:   "An unexpected error occurred. Use the trace_id to correlate server logs.",
		}})
	}
}

func (h *Handler) countAndWriteError(w http.ResponseWriter, ctx context.Context, endpoint, code, message string, errs []apierr.FieldError) {
	metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(apierr.StatusFor(code))).Inc()
	apierr.WriteError(w, ctx, code, message, errs)
}

// bindingErrors converts a JSON decode failure into field errors. Type
// mismatches name the offending field; anything else is a single generic
// payload error.
func bindingErrors(err error) []apierr.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []apierr.FieldError{{
			Field:     typeErr.Field,
			ErrorCode: apierr.ErrCodeInvalid,
			Message:   typeErr.Field + " is invalid.",
		}}
	}
	return []apierr.FieldError{{
		ErrorCode: apierr.ErrCodeInvalid,
		Message:   "Request body is not valid JSON.",
	}}
}

func toFieldErrors(violations []validator.Violation) []apierr.FieldError {
	out := make([]apierr.FieldError, 0, len(violations))
	for _, v := range violations {
		out = append(out, apierr.FieldError{
			Field:     v.Field,
			ErrorCode: v.ErrorCode,
			Message:   v.Message,
		})
	}
	return out
}
