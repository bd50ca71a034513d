package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustar/intake-backend/internal/model"
)

type AnyTime struct{}

func (a AnyTime) Match(v interface{}) bool {
	_, ok := v.(time.Time)
	return ok
}

var submissionColumns = []string{"id", "reference_number", "payload", "created_at"}

func TestPostgresStore_Insert(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPostgresStore(mockPool)
	sub := &model.Submission{ReferenceNumber: "EDU-ABC123", SubmissionInput: *sampleInput(), CreatedAt: time.Now()}

	mockPool.ExpectQuery("INSERT INTO submissions").
		WithArgs("EDU-ABC123", pgxmock.AnyArg(), AnyTime{}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("0b7c3d4e-0000-4000-8000-000000000001"))

	err = store.Insert(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "0b7c3d4e-0000-4000-8000-000000000001", sub.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresStore_Insert_UniqueViolation(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPostgresStore(mockPool)

	mockPool.ExpectQuery("INSERT INTO submissions").
		WithArgs("EDU-ABC123", pgxmock.AnyArg(), AnyTime{}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "submissions_reference_number_key"})

	err = store.Insert(context.Background(), &model.Submission{ReferenceNumber: "EDU-ABC123", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestPostgresStore_FindByReference(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPostgresStore(mockPool)
	in := sampleInput()
	payload, err := json.Marshal(in)
	require.NoError(t, err)
	createdAt := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	mockPool.ExpectQuery("SELECT .* FROM submissions WHERE reference_number =").
		WithArgs("EDU-ABC123").
		WillReturnRows(pgxmock.NewRows(submissionColumns).
			AddRow("0b7c3d4e-0000-4000-8000-000000000001", "EDU-ABC123", payload, createdAt))

	sub, err := store.FindByReference(context.Background(), "EDU-ABC123")
	require.NoError(t, err)
	assert.Equal(t, "EDU-ABC123", sub.ReferenceNumber)
	assert.Equal(t, createdAt, sub.CreatedAt)
	assert.Equal(t, *in, sub.SubmissionInput)
}

func TestPostgresStore_FindByReference_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPostgresStore(mockPool)

	mockPool.ExpectQuery("SELECT .* FROM submissions WHERE reference_number =").
		WithArgs("EDU-NOPE00").
		WillReturnError(pgx.ErrNoRows)

	_, err = store.FindByReference(context.Background(), "EDU-NOPE00")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestPostgresStore_ConnectionLoss(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPostgresStore(mockPool)

	mockPool.ExpectQuery("SELECT .* FROM submissions ORDER BY created_at DESC").
		WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

	_, err = store.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrSubmissionNotFound)
}

func TestPostgresStore_ListAll(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPostgresStore(mockPool)
	payload, err := json.Marshal(sampleInput())
	require.NoError(t, err)
	newer := time.Date(2025, 2, 3, 5, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mockPool.ExpectQuery("SELECT .* FROM submissions ORDER BY created_at DESC").
		WillReturnRows(pgxmock.NewRows(submissionColumns).
			AddRow("0b7c3d4e-0000-4000-8000-000000000002", "EDU-NEW002", payload, newer).
			AddRow("0b7c3d4e-0000-4000-8000-000000000001", "EDU-OLD001", payload, older))

	subs, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "EDU-NEW002", subs[0].ReferenceNumber)
	assert.Equal(t, "EDU-OLD001", subs[1].ReferenceNumber)
	assert.Equal(t, "Jane Doe", subs[1].FullName)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresStore_Ping(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	store := NewPostgresStore(mockPool)
	mockPool.ExpectPing().WillReturnError(errors.New("connection reset"))

	assert.ErrorIs(t, store.Ping(context.Background()), ErrStoreUnavailable)
}
