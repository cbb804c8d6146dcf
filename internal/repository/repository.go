// Package repository persists pre-onboarding records. The uniqueness of the
// (external_candidate_id, crisil_offer_id) pair is enforced by the store's
// unique index, never by an application-level pre-check, so concurrent
// inserts cannot race between check and insert.
package repository

import (
	"context"
	"errors"

	"github.com/crisil-hrops/preonboarding/internal/models"
)

var (
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates the
	// (external_candidate_id, crisil_offer_id) uniqueness constraint.
	ErrDuplicate = errors.New("record already exists for candidate/offer pair")
)

// Repository defines the interface for pre-onboarding record persistence.
type Repository interface {
	// Insert stores a new record and returns the store-assigned id.
	// Returns ErrDuplicate when the candidate/offer pair already exists.
	Insert(ctx context.Context, rec *models.StoredRecord) (int64, error)

	// GetByID fetches one record. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id int64) (*models.StoredRecord, error)

	// Search returns the matching page ordered by id descending, plus the
	// total count of the matching set. Paging inputs are assumed clamped by
	// the caller.
	Search(ctx context.Context, req *models.SearchRequest) ([]*models.StoredRecord, int, error)

	// Utility
	Close() error
}
