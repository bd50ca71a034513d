package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/edustar/intake-backend/internal/model"
	"github.com/google/uuid"
)

// MemoryStore keeps submissions in process memory. Used by tests and by
// DATABASE_URL=memory:// for local development.
type MemoryStore struct {
	mu    sync.RWMutex
	byRef map[string]int
	subs  []model.Submission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byRef: make(map[string]int)}
}

func (s *MemoryStore) Insert(_ context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byRef[sub.ReferenceNumber]; taken {
		return ErrDuplicateReference
	}
	sub.ID = uuid.NewString()
	s.byRef[sub.ReferenceNumber] = len(s.subs)
	s.subs = append(s.subs, clone(*sub))
	return nil
}

func (s *MemoryStore) FindByReference(_ context.Context, ref string) (*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byRef[ref]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	sub := clone(s.subs[i])
	return &sub, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]model.Submission, error) {
	s.mu.RLock()
	out := make([]model.Submission, 0, len(s.subs))
	for i := len(s.subs) - 1; i >= 0; i-- {
		out = append(out, clone(s.subs[i]))
	}
	s.mu.RUnlock()

	// Insertion order is reversed first so equal timestamps list newest first.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func clone(sub model.Submission) model.Submission {
	sub.StudyReasons = append([]string(nil), sub.StudyReasons...)
	sub.Challenges = append([]string(nil), sub.Challenges...)
	return sub
}
