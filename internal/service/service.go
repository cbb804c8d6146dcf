// Package service implements the intake pipeline and the query service. The
// write path is validate, persist, respond; the read path shares the same
// entity-to-response projection so both stay consistent with the wire schema.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crisil-hrops/preonboarding/internal/metrics"
	"github.com/crisil-hrops/preonboarding/internal/models"
	"github.com/crisil-hrops/preonboarding/internal/repository"
	"github.com/crisil-hrops/preonboarding/internal/validator"
)

// Paging bounds. Out-of-range inputs are clamped, never rejected.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// rawCaptureLimit bounds the best-effort raw payload copy stored with the
// row. The capture is informational only and never parsed back.
const rawCaptureLimit = 20000

// Service handles business logic for pre-onboarding records.
type Service struct {
	repo      repository.Repository
	validator *validator.Validator
}

// NewService creates a new service instance.
func NewService(repo repository.Repository) *Service {
	return &Service{
		repo:      repo,
		validator: validator.New(),
	}
}

// Create runs the intake pipeline for one candidate record. A non-empty
// violation list is a terminal outcome for the request; the record is not
// persisted. createdBy is the trusted company code header value and rawBody
// is the original request payload for audit capture.
func (s *Service) Create(ctx context.Context, req *models.CandidateRecord, createdBy string, rawBody []byte) (*models.CreateData, []validator.Violation, error) {
	if violations := s.validator.Validate(req); len(violations) > 0 {
		return nil, violations, nil
	}

	rec, err := s.buildStoredRecord(req, createdBy, rawBody)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	id, err := s.repo.Insert(ctx, rec)
	metrics.StorageDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, nil, err
	}

	return &models.CreateData{
		ID:                  id,
		ExternalCandidateID: rec.ExternalCandidateID,
		CrisilOfferID:       rec.CrisilOfferID,
	}, nil, nil
}

// Get fetches one record and projects it to the response shape.
func (s *Service) Get(ctx context.Context, id int64) (*models.RecordResponse, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(rec), nil
}

// Search clamps the paging inputs and returns the matching page newest-first.
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchData, error) {
	if req.Page < 1 {
		req.Page = DefaultPage
	}
	if req.PageSize < 1 {
		req.PageSize = DefaultPageSize
	}
	if req.PageSize > MaxPageSize {
		req.PageSize = MaxPageSize
	}

	start := time.Now()
	records, total, err := s.repo.Search(ctx, req)
	metrics.StorageDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	metrics.SearchResults.Observe(float64(total))

	items := make([]*models.RecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toResponse(rec))
	}

	return &models.SearchData{
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
		Items:    items,
	}, nil
}

// buildStoredRecord flattens the validated request into its durable form.
// Dates are guaranteed parseable after validation.
func (s *Service) buildStoredRecord(req *models.CandidateRecord, createdBy string, rawBody []byte) (*models.StoredRecord, error) {
	joiningDate, err := models.ParseDate(req.JoiningDate)
	if err != nil {
		return nil, fmt.Errorf("joining_date escaped validation: %w", err)
	}
	dateOfBirth, err := models.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("date_of_birth escaped validation: %w", err)
	}

	addressJSON, err := marshalSection(req.Address)
	if err != nil {
		return nil, err
	}
	jobJSON, err := marshalSection(req.Job)
	if err != nil {
		return nil, err
	}
	payJSON, err := marshalSection(req.Pay)
	if err != nil {
		return nil, err
	}
	kycJSON, err := marshalSection(req.Kyc)
	if err != nil {
		return nil, err
	}
	emergencyJSON, err := marshalSection(req.EmergencyContact)
	if err != nil {
		return nil, err
	}

	return &models.StoredRecord{
		ExternalCandidateID: req.ExternalCandidateID,
		CrisilOfferID:       req.CrisilOfferID,
		JoiningStatus:       optional(req.JoiningStatus),
		JoiningDate:         joiningDate.Time,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		DateOfBirth:         dateOfBirth.Time,
		Gender:              optional(req.Gender),
		Nationality:         optional(req.Nationality),
		PersonalEmail:       req.PersonalEmail,
		MobileCountryCode:   optional(req.MobileCountryCode),
		MobileNumber:        req.MobileNumber,

		AddressJSON:          addressJSON,
		JobJSON:              jobJSON,
		PayJSON:              payJSON,
		KycJSON:              kycJSON,
		EmergencyContactJSON: emergencyJSON,

		CreatedUTC:     time.Now().UTC(),
		CreatedBy:      optional(createdBy),
		RawRequestJSON: truncateRaw(rawBody),
		Status:         models.RecordStatusActive,
	}, nil
}

// marshalSection serializes a nested section to its opaque stored form.
// A nil section stays nil so the column is NULL, not "null".
func marshalSection[T any](section *T) (*string, error) {
	if section == nil {
		return nil, nil
	}
	data, err := json.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize nested section: %w", err)
	}
	s := string(data)
	return &s, nil
}

// truncateRaw caps the audit copy of the request body.
func truncateRaw(body []byte) *string {
	if len(body) == 0 {
		return nil
	}
	raw := string(body)
	if len(raw) > rawCaptureLimit {
		raw = raw[:rawCaptureLimit] + "...(truncated)"
	}
	return &raw
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
