package repository

//go:generate mockgen -source=submission_repository.go -destination=mocks/mock_store.go -package=mocks SubmissionStore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/reference"
	"github.com/edustar/intake-backend/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type fixedGenerator struct {
	refs []string
	next int
}

func (g *fixedGenerator) Generate() (string, error) {
	if g.next >= len(g.refs) {
		return "", errors.New("out of references")
	}
	ref := g.refs[g.next]
	g.next++
	return ref, nil
}

// steppingClock advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func sampleInput() *model.SubmissionInput {
	return &model.SubmissionInput{
		FullName:              "Jane Doe",
		DateOfBirth:           "2000-01-01",
		Gender:                "Female",
		Email:                 "jane@example.com",
		PhoneNumber:           "+233200000000",
		Nationality:           "Ghanaian",
		CurrentCountry:        "Ghana",
		PassportNumber:        "G1234567",
		EducationLevel:        "Bachelor's Degree",
		InstitutionName:       "X University",
		FieldOfStudy:          "CS",
		GraduationYear:        "2022",
		StudyReasons:          []string{"Career opportunities", "Other"},
		StudyReasonsOther:     "Family abroad",
		Challenges:            []string{"Visa process"},
		OpenToContact:         true,
		ContactMethod:         "Email",
		EmergencyName:         "John Doe",
		EmergencyContact:      "+233200000001",
		EmergencyAddress:      "123 St",
		EmergencyEmail:        "john@example.com",
		EmergencyCountry:      "Ghana",
		EmergencyRelationship: "Father",
		EmergencyProvince:     "Greater Accra",
		EmergencyCity:         "Accra",
		IELTSScore:            "7.0",
	}
}

// =============================================================================
// Gateway over the memory store
// =============================================================================

func TestSubmissionRepository_MemoryContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) SubmissionStore { return NewMemoryStore() })
}

func TestSubmissionRepository_GeneratesReference(t *testing.T) {
	repo := NewSubmissionRepository(NewMemoryStore(), reference.NewGenerator())

	sub, err := repo.Create(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.True(t, reference.Valid(sub.ReferenceNumber), sub.ReferenceNumber)
	assert.NotEmpty(t, sub.ID)
	assert.Empty(t, sub.SubmissionInput.ReferenceNumber)
	assert.False(t, sub.CreatedAt.IsZero())
}

func TestSubmissionRepository_ListAllEmpty(t *testing.T) {
	repo := NewSubmissionRepository(NewMemoryStore(), reference.NewGenerator())

	subs, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)
}

// =============================================================================
// Gateway error propagation
// =============================================================================

type SubmissionRepositorySuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *mocks.MockSubmissionStore
	repo  *SubmissionRepository
	now   time.Time
}

func TestSubmissionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SubmissionRepositorySuite))
}

func (s *SubmissionRepositorySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockSubmissionStore(s.ctrl)
	s.now = time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.FixedZone("WAT", 3600))
	s.repo = NewSubmissionRepository(s.store,
		&fixedGenerator{refs: []string{"EDU-GEN001"}},
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *SubmissionRepositorySuite) TestCreate_StampsAndInserts() {
	s.store.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *model.Submission) error {
			s.Equal("EDU-GEN001", sub.ReferenceNumber)
			s.Equal(time.UTC, sub.CreatedAt.Location())
			s.Equal(s.now.UTC().Truncate(time.Millisecond), sub.CreatedAt)
			sub.ID = "id-1"
			return nil
		})

	sub, err := s.repo.Create(context.Background(), sampleInput())
	s.Require().NoError(err)
	s.Equal("id-1", sub.ID)
	s.Equal("Jane Doe", sub.FullName)
}

func (s *SubmissionRepositorySuite) TestCreate_KeepsSuppliedReference() {
	in := sampleInput()
	in.ReferenceNumber = "EDU-OWN123"

	s.store.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *model.Submission) error {
			s.Equal("EDU-OWN123", sub.ReferenceNumber)
			s.Empty(sub.SubmissionInput.ReferenceNumber)
			return nil
		})

	_, err := s.repo.Create(context.Background(), in)
	s.Require().NoError(err)
	s.Equal("EDU-OWN123", in.ReferenceNumber, "caller input must not be mutated")
}

func (s *SubmissionRepositorySuite) TestCreate_DuplicateIsUnwrapped() {
	s.store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(ErrDuplicateReference)

	_, err := s.repo.Create(context.Background(), sampleInput())
	s.ErrorIs(err, ErrDuplicateReference)
}

func (s *SubmissionRepositorySuite) TestCreate_StoreUnavailable() {
	s.store.EXPECT().Insert(gomock.Any(), gomock.Any()).
		Return(errors.Join(ErrStoreUnavailable, errors.New("connection refused")))

	_, err := s.repo.Create(context.Background(), sampleInput())
	s.ErrorIs(err, ErrStoreUnavailable)
	s.Contains(err.Error(), "EDU-GEN001")
}

func (s *SubmissionRepositorySuite) TestFindByReference_NotFound() {
	s.store.EXPECT().FindByReference(gomock.Any(), "EDU-NOPE00").Return(nil, ErrSubmissionNotFound)

	_, err := s.repo.FindByReference(context.Background(), "EDU-NOPE00")
	s.Equal(ErrSubmissionNotFound, err)
}

func (s *SubmissionRepositorySuite) TestListAll_WrapsErrors() {
	s.store.EXPECT().ListAll(gomock.Any()).Return(nil, ErrStoreUnavailable)

	_, err := s.repo.ListAll(context.Background())
	s.ErrorIs(err, ErrStoreUnavailable)
}

// =============================================================================
// Store contract shared with the integration tests
// =============================================================================

func runStoreContract(t *testing.T, newStore func(t *testing.T) SubmissionStore) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	t.Run("round trip preserves fields", func(t *testing.T) {
		repo := NewSubmissionRepository(newStore(t), &fixedGenerator{refs: []string{"EDU-RT0001"}}, WithClock(steppingClock(start)))

		created, err := repo.Create(ctx, sampleInput())
		require.NoError(t, err)

		found, err := repo.FindByReference(ctx, "EDU-RT0001")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.ReferenceNumber, found.ReferenceNumber)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
		assert.Equal(t, created.SubmissionInput, found.SubmissionInput)
	})

	t.Run("duplicate reference keeps one record", func(t *testing.T) {
		repo := NewSubmissionRepository(newStore(t), reference.NewGenerator(), WithClock(steppingClock(start)))

		first := sampleInput()
		first.ReferenceNumber = "EDU-DUP001"
		_, err := repo.Create(ctx, first)
		require.NoError(t, err)

		second := sampleInput()
		second.ReferenceNumber = "EDU-DUP001"
		second.FullName = "Someone Else"
		_, err = repo.Create(ctx, second)
		assert.ErrorIs(t, err, ErrDuplicateReference)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Jane Doe", all[0].FullName)
	})

	t.Run("missing reference is not found", func(t *testing.T) {
		repo := NewSubmissionRepository(newStore(t), reference.NewGenerator())

		_, err := repo.FindByReference(ctx, "EDU-ZZZZZZ")
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})

	t.Run("list is newest first", func(t *testing.T) {
		gen := &fixedGenerator{refs: []string{"EDU-LST001", "EDU-LST002", "EDU-LST003"}}
		repo := NewSubmissionRepository(newStore(t), gen, WithClock(steppingClock(start)))

		for i := 0; i < 3; i++ {
			_, err := repo.Create(ctx, sampleInput())
			require.NoError(t, err)
		}

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "EDU-LST003", all[0].ReferenceNumber)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
		}
	})
}
