package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisil-hrops/preonboarding/internal/models"
	"github.com/crisil-hrops/preonboarding/internal/repository"
)

// mockRepository is a mock implementation of repository.Repository for
// testing the service in isolation.
type mockRepository struct {
	insertFunc  func(ctx context.Context, rec *models.StoredRecord) (int64, error)
	getByIDFunc func(ctx context.Context, id int64) (*models.StoredRecord, error)
	searchFunc  func(ctx context.Context, req *models.SearchRequest) ([]*models.StoredRecord, int, error)
}

func (m *mockRepository) Insert(ctx context.Context, rec *models.StoredRecord) (int64, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, rec)
	}
	return 1, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*models.StoredRecord, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRepository) Search(ctx context.Context, req *models.SearchRequest) ([]*models.StoredRecord, int, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, req)
	}
	return nil, 0, nil
}

func (m *mockRepository) Close() error {
	return nil
}

func validRequest() *models.CandidateRecord {
	ctc := 1500000.0
	return &models.CandidateRecord{
		ExternalCandidateID: "CAND-042",
		CrisilOfferID:       "OFF-042",
		JoiningStatus:       "Joined",
		JoiningDate:         "01-10-2026",
		FirstName:           "Meera",
		LastName:            "Shah",
		DateOfBirth:         "21-06-1991",
		Gender:              "Female",
		PersonalEmail:       "meera.shah@example.com",
		MobileCountryCode:   "+91",
		MobileNumber:        "9812345678",
		Pay: &models.Pay{
			CtcAnnualInInr: &ctc,
			PayrollCycle:   "Monthly",
		},
		Kyc: &models.Kyc{
			Pan: "ABCDE1234F",
		},
	}
}

func TestCreateValidRecord(t *testing.T) {
	var inserted *models.StoredRecord
	repo := &mockRepository{
		insertFunc: func(_ context.Context, rec *models.StoredRecord) (int64, error) {
			inserted = rec
			return 7, nil
		},
	}
	svc := NewService(repo)

	rawBody := []byte(`{"external_candidate_id":"CAND-042"}`)
	data, violations, err := svc.Create(context.Background(), validRequest(), "CRISIL", rawBody)

	require.NoError(t, err)
	assert.Empty(t, violations)
	require.NotNil(t, data)
	assert.Equal(t, int64(7), data.ID)
	assert.Equal(t, "CAND-042", data.ExternalCandidateID)
	assert.Equal(t, "OFF-042", data.CrisilOfferID)

	require.NotNil(t, inserted)
	assert.Equal(t, "CAND-042", inserted.ExternalCandidateID)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), inserted.JoiningDate)
	assert.Equal(t, time.Date(1991, time.June, 21, 0, 0, 0, 0, time.UTC), inserted.DateOfBirth)
	assert.Equal(t, models.RecordStatusActive, inserted.Status)
	require.NotNil(t, inserted.CreatedBy)
	assert.Equal(t, "CRISIL", *inserted.CreatedBy)
	require.NotNil(t, inserted.RawRequestJSON)
	assert.Equal(t, string(rawBody), *inserted.RawRequestJSON)
	require.NotNil(t, inserted.PayJSON)
	assert.Contains(t, *inserted.PayJSON, "ctc_annual_in_inr")
	assert.Nil(t, inserted.AddressJSON)
	assert.False(t, inserted.CreatedUTC.IsZero())
}

func TestCreateInvalidRecordDoesNotTouchStore(t *testing.T) {
	called := false
	repo := &mockRepository{
		insertFunc: func(_ context.Context, _ *models.StoredRecord) (int64, error) {
			called = true
			return 1, nil
		},
	}
	svc := NewService(repo)

	req := validRequest()
	req.PersonalEmail = ""

	data, violations, err := svc.Create(context.Background(), req, "CRISIL", nil)

	require.NoError(t, err)
	assert.Nil(t, data)
	require.Len(t, violations, 1)
	assert.Equal(t, "personal_email", violations[0].Field)
	assert.False(t, called, "store must not be touched for invalid records")
}

func TestCreatePropagatesDuplicate(t *testing.T) {
	repo := &mockRepository{
		insertFunc: func(_ context.Context, _ *models.StoredRecord) (int64, error) {
			return 0, repository.ErrDuplicate
		},
	}
	svc := NewService(repo)

	data, violations, err := svc.Create(context.Background(), validRequest(), "CRISIL", nil)

	assert.Nil(t, data)
	assert.Empty(t, violations)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateTruncatesOversizedRawBody(t *testing.T) {
	var inserted *models.StoredRecord
	repo := &mockRepository{
		insertFunc: func(_ context.Context, rec *models.StoredRecord) (int64, error) {
			inserted = rec
			return 1, nil
		},
	}
	svc := NewService(repo)

	raw := []byte(strings.Repeat("a", rawCaptureLimit+500))
	_, violations, err := svc.Create(context.Background(), validRequest(), "", raw)

	require.NoError(t, err)
	require.Empty(t, violations)
	require.NotNil(t, inserted.RawRequestJSON)
	assert.Len(t, *inserted.RawRequestJSON, rawCaptureLimit+len("...(truncated)"))
	assert.True(t, strings.HasSuffix(*inserted.RawRequestJSON, "...(truncated)"))
	assert.Nil(t, inserted.CreatedBy)
}

func TestGetProjectsStoredRecord(t *testing.T) {
	pay := `{"ctc_annual_in_inr":1500000,"payroll_cycle":"Monthly"}`
	status := "Joined"
	repo := &mockRepository{
		getByIDFunc: func(_ context.Context, id int64) (*models.StoredRecord, error) {
			return &models.StoredRecord{
				ID:                  id,
				ExternalCandidateID: "CAND-042",
				CrisilOfferID:       "OFF-042",
				JoiningStatus:       &status,
				JoiningDate:         time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
				FirstName:           "Meera",
				LastName:            "Shah",
				DateOfBirth:         time.Date(1991, time.June, 21, 0, 0, 0, 0, time.UTC),
				PersonalEmail:       "meera.shah@example.com",
				MobileNumber:        "9812345678",
				PayJSON:             &pay,
				CreatedUTC:          time.Now().UTC(),
				Status:              models.RecordStatusActive,
			}, nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.Get(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "01-10-2026", resp.JoiningDate.String())
	assert.Equal(t, "21-06-1991", resp.DateOfBirth.String())
	require.NotNil(t, resp.Pay)
	require.NotNil(t, resp.Pay.CtcAnnualInInr)
	assert.Equal(t, 1500000.0, *resp.Pay.CtcAnnualInInr)
	assert.Equal(t, "Monthly", resp.Pay.PayrollCycle)
	assert.Nil(t, resp.Address)
}

func TestGetCorruptSectionDegradesToNil(t *testing.T) {
	corrupt := `{"not json`
	repo := &mockRepository{
		getByIDFunc: func(_ context.Context, id int64) (*models.StoredRecord, error) {
			return &models.StoredRecord{ID: id, KycJSON: &corrupt, CreatedUTC: time.Now().UTC()}, nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Nil(t, resp.Kyc)
}

func TestGetPropagatesNotFound(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSearchClampsPaging(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero page and size", 0, 0, DefaultPage, DefaultPageSize},
		{"negative page", -5, 10, DefaultPage, 10},
		{"oversized page size", 1, 500, 1, MaxPageSize},
		{"in range untouched", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *models.SearchRequest
			repo := &mockRepository{
				searchFunc: func(_ context.Context, req *models.SearchRequest) ([]*models.StoredRecord, int, error) {
					seen = req
					return nil, 0, nil
				},
			}
			svc := NewService(repo)

			data, err := svc.Search(context.Background(), &models.SearchRequest{Page: tt.page, PageSize: tt.pageSize})

			require.NoError(t, err)
			require.NotNil(t, seen)
			assert.Equal(t, tt.wantPage, seen.Page)
			assert.Equal(t, tt.wantPageSize, seen.PageSize)
			assert.Equal(t, tt.wantPage, data.Page)
			assert.Equal(t, tt.wantPageSize, data.PageSize)
			assert.NotNil(t, data.Items)
		})
	}
}

func TestSearchProjectsItems(t *testing.T) {
	repo := &mockRepository{
		searchFunc: func(_ context.Context, _ *models.SearchRequest) ([]*models.StoredRecord, int, error) {
			return []*models.StoredRecord{
				{ID: 9, ExternalCandidateID: "C9", CreatedUTC: time.Now().UTC()},
				{ID: 8, ExternalCandidateID: "C8", CreatedUTC: time.Now().UTC()},
			}, 12, nil
		},
	}
	svc := NewService(repo)

	data, err := svc.Search(context.Background(), &models.SearchRequest{Page: 1, PageSize: 2})

	require.NoError(t, err)
	assert.Equal(t, 12, data.Total)
	require.Len(t, data.Items, 2)
	assert.Equal(t, int64(9), data.Items[0].ID)
	assert.Equal(t, int64(8), data.Items[1].ID)
}
