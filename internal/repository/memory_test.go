package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisil-hrops/preonboarding/internal/models"
)

func storedRecord(candidateID, offerID string, joining time.Time) *models.StoredRecord {
	return &models.StoredRecord{
		ExternalCandidateID: candidateID,
		CrisilOfferID:       offerID,
		JoiningDate:         joining,
		DateOfBirth:         time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		FirstName:           "Test",
		LastName:            "Candidate",
		PersonalEmail:       "test@example.com",
		MobileNumber:        "9876543210",
		CreatedUTC:          time.Now().UTC(),
		Status:              models.RecordStatusActive,
	}
}

func TestInMemoryInsertAssignsSequentialIDs(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	id1, err := repo.Insert(ctx, storedRecord("C1", "O1", time.Now()))
	require.NoError(t, err)
	id2, err := repo.Insert(ctx, storedRecord("C2", "O2", time.Now()))
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
}

func TestInMemoryInsertRejectsDuplicatePair(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, storedRecord("C1", "O1", time.Now()))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, storedRecord("C1", "O1", time.Now()))
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same candidate with a different offer is a new record
	_, err = repo.Insert(ctx, storedRecord("C1", "O2", time.Now()))
	assert.NoError(t, err)
}

func TestInMemoryConcurrentDuplicateInserts(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	const goroutines = 20
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Insert(ctx, storedRecord("C1", "O1", time.Now()))
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case err == ErrDuplicate:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one insert must win")
	assert.Equal(t, goroutines-1, dup)
}

func TestInMemoryGetByID(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	id, err := repo.Insert(ctx, storedRecord("C1", "O1", time.Now()))
	require.NoError(t, err)

	rec, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "C1", rec.ExternalCandidateID)

	_, err = repo.GetByID(ctx, id+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryGetReturnsCopy(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	id, err := repo.Insert(ctx, storedRecord("C1", "O1", time.Now()))
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	first.ExternalCandidateID = "mutated"

	second, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "C1", second.ExternalCandidateID)
}

func TestInMemorySearchFilters(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC)

	_, err := repo.Insert(ctx, storedRecord("C1", "O1", jan))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, storedRecord("C1", "O2", jun))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, storedRecord("C2", "O3", dec))
	require.NoError(t, err)

	page := func(req *models.SearchRequest) ([]*models.StoredRecord, int) {
		req.Page = 1
		req.PageSize = 10
		recs, total, err := repo.Search(ctx, req)
		require.NoError(t, err)
		return recs, total
	}

	recs, total := page(&models.SearchRequest{ExternalCandidateID: "C1"})
	assert.Equal(t, 2, total)
	assert.Len(t, recs, 2)

	recs, total = page(&models.SearchRequest{CrisilOfferID: "O3"})
	assert.Equal(t, 1, total)
	require.Len(t, recs, 1)
	assert.Equal(t, "C2", recs[0].ExternalCandidateID)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	recs, total = page(&models.SearchRequest{From: &from, To: &to})
	assert.Equal(t, 1, total)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].JoiningDate.Equal(jun))

	_, total = page(&models.SearchRequest{})
	assert.Equal(t, 3, total)
}

func TestInMemorySearchOrdersNewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, storedRecord(fmt.Sprintf("C%d", i), "O1", time.Now()))
		require.NoError(t, err)
	}

	recs, total, err := repo.Search(ctx, &models.SearchRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	for i := 1; i < len(recs); i++ {
		assert.Greater(t, recs[i-1].ID, recs[i].ID)
	}
}

func TestInMemorySearchPaginationPartition(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	const n = 7
	for i := 0; i < n; i++ {
		_, err := repo.Insert(ctx, storedRecord(fmt.Sprintf("C%d", i), "O1", time.Now()))
		require.NoError(t, err)
	}

	seen := make(map[int64]bool)
	for page := 1; ; page++ {
		recs, total, err := repo.Search(ctx, &models.SearchRequest{Page: page, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, n, total)
		if len(recs) == 0 {
			break
		}
		for _, rec := range recs {
			assert.False(t, seen[rec.ID], "record %d appeared on two pages", rec.ID)
			seen[rec.ID] = true
		}
	}
	assert.Len(t, seen, n)
}

func TestInMemoryHonorsCancelledContext(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Insert(ctx, storedRecord("C1", "O1", time.Now()))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = repo.Search(ctx, &models.SearchRequest{Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, context.Canceled)
}
