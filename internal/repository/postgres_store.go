package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edustar/intake-backend/internal/model"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the store uses. pgxmock pools
// satisfy it too.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PostgresStore keeps each questionnaire as a JSONB document next to its
// reference number.
type PostgresStore struct {
	db Querier
}

func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

type submissionRow struct {
	ID              string    `db:"id"`
	ReferenceNumber string    `db:"reference_number"`
	Payload         []byte    `db:"payload"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r submissionRow) toModel() (*model.Submission, error) {
	sub := &model.Submission{
		ID:              r.ID,
		ReferenceNumber: r.ReferenceNumber,
		CreatedAt:       r.CreatedAt.UTC(),
	}
	if err := json.Unmarshal(r.Payload, &sub.SubmissionInput); err != nil {
		return nil, fmt.Errorf("decode payload of %s: %w", r.ReferenceNumber, err)
	}
	sub.SubmissionInput.ReferenceNumber = ""
	return sub, nil
}

func (s *PostgresStore) Insert(ctx context.Context, sub *model.Submission) error {
	payload, err := json.Marshal(sub.SubmissionInput)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO submissions (reference_number, payload, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id::text`,
		sub.ReferenceNumber, payload, sub.CreatedAt,
	).Scan(&sub.ID)
	if err != nil {
		return handleError(err)
	}
	return nil
}

func (s *PostgresStore) FindByReference(ctx context.Context, ref string) (*model.Submission, error) {
	var row submissionRow
	err := pgxscan.Get(ctx, s.db, &row,
		`SELECT id::text AS id, reference_number, payload, created_at
		 FROM submissions WHERE reference_number = $1`, ref)
	if err != nil {
		return nil, handleError(err)
	}
	return row.toModel()
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]model.Submission, error) {
	var rows []submissionRow
	err := pgxscan.Select(ctx, s.db, &rows,
		`SELECT id::text AS id, reference_number, payload, created_at
		 FROM submissions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, handleError(err)
	}

	subs := make([]model.Submission, 0, len(rows))
	for _, row := range rows {
		sub, err := row.toModel()
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// handleError maps driver errors onto the repository sentinels. Anything that
// is not a server-side PostgreSQL error is treated as a connectivity failure.
func handleError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return ErrSubmissionNotFound
	}
	if isUniqueViolation(err) {
		return ErrDuplicateReference
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres: %w", err)
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
