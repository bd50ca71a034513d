package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/reference"
)

// SubmissionStore is a backend that persists submissions.
//
// Insert must fill in sub.ID and report a taken reference number as
// ErrDuplicateReference. FindByReference reports a miss as
// ErrSubmissionNotFound. ListAll returns newest first.
type SubmissionStore interface {
	Insert(ctx context.Context, sub *model.Submission) error
	FindByReference(ctx context.Context, ref string) (*model.Submission, error)
	ListAll(ctx context.Context) ([]model.Submission, error)
	Ping(ctx context.Context) error
}

// SubmissionRepository is the persistence gateway used by the service layer.
type SubmissionRepository struct {
	store SubmissionStore
	gen   reference.Generator
	now   func() time.Time
}

// Option configures a SubmissionRepository.
type Option func(*SubmissionRepository)

// WithClock replaces time.Now for stamping createdAt.
func WithClock(now func() time.Time) Option {
	return func(r *SubmissionRepository) {
		r.now = now
	}
}

func NewSubmissionRepository(store SubmissionStore, gen reference.Generator, opts ...Option) *SubmissionRepository {
	r := &SubmissionRepository{store: store, gen: gen, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create persists a validated input. A reference number is generated when the
// input carries none.
func (r *SubmissionRepository) Create(ctx context.Context, in *model.SubmissionInput) (*model.Submission, error) {
	ref := in.ReferenceNumber
	if ref == "" {
		var err error
		if ref, err = r.gen.Generate(); err != nil {
			return nil, err
		}
	}

	sub := &model.Submission{
		ReferenceNumber: ref,
		SubmissionInput: *in,
		// Millisecond precision survives every backend unchanged.
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}
	sub.SubmissionInput.ReferenceNumber = ""

	if err := r.store.Insert(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicateReference) {
			return nil, err
		}
		return nil, fmt.Errorf("insert submission %s: %w", ref, err)
	}
	return sub, nil
}

// FindByReference looks a submission up by exact reference number.
func (r *SubmissionRepository) FindByReference(ctx context.Context, ref string) (*model.Submission, error) {
	sub, err := r.store.FindByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find submission %s: %w", ref, err)
	}
	return sub, nil
}

// ListAll returns every submission, newest first.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]model.Submission, error) {
	subs, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if subs == nil {
		subs = []model.Submission{}
	}
	return subs, nil
}

// Ping checks the backing store.
func (r *SubmissionRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
