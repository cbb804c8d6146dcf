package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/crisil-hrops/preonboarding/internal/models"
)

// InMemoryRepository implements Repository with a mutex-guarded map. It
// mirrors the Postgres semantics (pair uniqueness, id-descending search) and
// backs the service and handler tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]*models.StoredRecord
	pairs   map[pairKey]struct{}
}

type pairKey struct {
	candidateID string
	offerID     string
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID:  1,
		records: make(map[int64]*models.StoredRecord),
		pairs:   make(map[pairKey]struct{}),
	}
}

// Insert assigns a monotonically increasing id. Ids are never reused, even
// conceptually, because nothing deletes from the map.
func (r *InMemoryRepository) Insert(ctx context.Context, rec *models.StoredRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{rec.ExternalCandidateID, rec.CrisilOfferID}
	if _, exists := r.pairs[key]; exists {
		return 0, ErrDuplicate
	}

	stored := *rec
	stored.ID = r.nextID
	r.nextID++
	r.records[stored.ID] = &stored
	r.pairs[key] = struct{}{}
	return stored.ID, nil
}

// GetByID fetches a record copy by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*models.StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.records[id]
	if !exists {
		return nil, ErrNotFound
	}
	out := *rec
	return &out, nil
}

// Search filters, orders by id descending and pages in memory.
func (r *InMemoryRepository) Search(ctx context.Context, req *models.SearchRequest) ([]*models.StoredRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.StoredRecord
	for _, rec := range r.records {
		if req.ExternalCandidateID != "" && rec.ExternalCandidateID != req.ExternalCandidateID {
			continue
		}
		if req.CrisilOfferID != "" && rec.CrisilOfferID != req.CrisilOfferID {
			continue
		}
		if req.From != nil && rec.JoiningDate.Before(*req.From) {
			continue
		}
		if req.To != nil && rec.JoiningDate.After(*req.To) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := len(matched)

	offset := (req.Page - 1) * req.PageSize
	if offset >= total {
		return nil, total, nil
	}
	end := offset + req.PageSize
	if end > total {
		end = total
	}

	page := make([]*models.StoredRecord, 0, end-offset)
	for _, rec := range matched[offset:end] {
		out := *rec
		page = append(page, &out)
	}
	return page, total, nil
}

// Close is a no-op for the in-memory repository.
func (r *InMemoryRepository) Close() error {
	return nil
}
