package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crisil-hrops/preonboarding/internal/models"
)

// pgUniqueViolation is the Postgres error code for a unique constraint breach.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(ctx context.Context, connString string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Connection pool configuration
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Ping reports whether the database is reachable.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Insert stores a record in a single atomic statement. Duplicate detection
// happens here and only here: the unique index raises 23505 and that becomes
// ErrDuplicate.
func (r *PostgresRepository) Insert(ctx context.Context, rec *models.StoredRecord) (int64, error) {
	query := `
		INSERT INTO pre_onboardings (
			external_candidate_id, crisil_offer_id, joining_status, joining_date,
			first_name, last_name, date_of_birth, gender, nationality,
			personal_email, mobile_country_code, mobile_number,
			address_json, job_json, pay_json, kyc_json, emergency_contact_json,
			created_utc, created_by, raw_request_json, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		rec.ExternalCandidateID, rec.CrisilOfferID, rec.JoiningStatus, rec.JoiningDate,
		rec.FirstName, rec.LastName, rec.DateOfBirth, rec.Gender, rec.Nationality,
		rec.PersonalEmail, rec.MobileCountryCode, rec.MobileNumber,
		rec.AddressJSON, rec.JobJSON, rec.PayJSON, rec.KycJSON, rec.EmergencyContactJSON,
		rec.CreatedUTC, rec.CreatedBy, rec.RawRequestJSON, rec.Status,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	return id, nil
}

// GetByID retrieves a record by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.StoredRecord, error) {
	query := `
		SELECT id, external_candidate_id, crisil_offer_id, joining_status, joining_date,
			first_name, last_name, date_of_birth, gender, nationality,
			personal_email, mobile_country_code, mobile_number,
			address_json, job_json, pay_json, kyc_json, emergency_contact_json,
			created_utc, updated_utc, created_by, updated_by, raw_request_json, status
		FROM pre_onboardings
		WHERE id = $1
	`

	rec := &models.StoredRecord{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.ExternalCandidateID, &rec.CrisilOfferID, &rec.JoiningStatus, &rec.JoiningDate,
		&rec.FirstName, &rec.LastName, &rec.DateOfBirth, &rec.Gender, &rec.Nationality,
		&rec.PersonalEmail, &rec.MobileCountryCode, &rec.MobileNumber,
		&rec.AddressJSON, &rec.JobJSON, &rec.PayJSON, &rec.KycJSON, &rec.EmergencyContactJSON,
		&rec.CreatedUTC, &rec.UpdatedUTC, &rec.CreatedBy, &rec.UpdatedBy, &rec.RawRequestJSON, &rec.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return rec, nil
}

// Search retrieves a page of records matching the filters, newest first.
func (r *PostgresRepository) Search(ctx context.Context, req *models.SearchRequest) ([]*models.StoredRecord, int, error) {
	// Build WHERE clause; unset filters add no predicate
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if req.ExternalCandidateID != "" {
		whereClause += fmt.Sprintf(" AND external_candidate_id = $%d", argPos)
		args = append(args, req.ExternalCandidateID)
		argPos++
	}
	if req.CrisilOfferID != "" {
		whereClause += fmt.Sprintf(" AND crisil_offer_id = $%d", argPos)
		args = append(args, req.CrisilOfferID)
		argPos++
	}
	if req.From != nil {
		whereClause += fmt.Sprintf(" AND joining_date >= $%d", argPos)
		args = append(args, *req.From)
		argPos++
	}
	if req.To != nil {
		whereClause += fmt.Sprintf(" AND joining_date <= $%d", argPos)
		args = append(args, *req.To)
		argPos++
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM pre_onboardings %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	// Page query, strictly descending by id for a stable order
	listQuery := fmt.Sprintf(`
		SELECT id, external_candidate_id, crisil_offer_id, joining_status, joining_date,
			first_name, last_name, date_of_birth, gender, nationality,
			personal_email, mobile_country_code, mobile_number,
			address_json, job_json, pay_json, kyc_json, emergency_contact_json,
			created_utc, updated_utc, created_by, updated_by, raw_request_json, status
		FROM pre_onboardings
		%s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, req.PageSize, (req.Page-1)*req.PageSize)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search records: %w", err)
	}
	defer rows.Close()

	var records []*models.StoredRecord
	for rows.Next() {
		rec := &models.StoredRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.ExternalCandidateID, &rec.CrisilOfferID, &rec.JoiningStatus, &rec.JoiningDate,
			&rec.FirstName, &rec.LastName, &rec.DateOfBirth, &rec.Gender, &rec.Nationality,
			&rec.PersonalEmail, &rec.MobileCountryCode, &rec.MobileNumber,
			&rec.AddressJSON, &rec.JobJSON, &rec.PayJSON, &rec.KycJSON, &rec.EmergencyContactJSON,
			&rec.CreatedUTC, &rec.UpdatedUTC, &rec.CreatedBy, &rec.UpdatedBy, &rec.RawRequestJSON, &rec.Status,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read search rows: %w", err)
	}

	return records, total, nil
}
