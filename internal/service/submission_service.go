package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edustar/intake-backend/internal/config"
	"github.com/edustar/intake-backend/internal/events"
	"github.com/edustar/intake-backend/internal/metrics"
	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/reference"
	"github.com/edustar/intake-backend/internal/repository"
	"github.com/edustar/intake-backend/internal/validator"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrReferenceExhausted is returned when every generated reference number
// collided with an existing one.
var ErrReferenceExhausted = errors.New("could not allocate a unique reference number")

const publishTimeout = 5 * time.Second

// SubmissionGateway is the persistence gateway the service depends on.
type SubmissionGateway interface {
	Create(ctx context.Context, in *model.SubmissionInput) (*model.Submission, error)
	FindByReference(ctx context.Context, ref string) (*model.Submission, error)
	ListAll(ctx context.Context) ([]model.Submission, error)
	Ping(ctx context.Context) error
}

// SubmissionService handles questionnaire intake business logic.
type SubmissionService struct {
	repo        SubmissionGateway
	validator   *validator.Validator
	rdb         *redis.Client
	publisher   events.Publisher
	metrics     *metrics.Metrics
	cacheTTL    time.Duration
	maxAttempts int
	log         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService. rdb may be nil, in
// which case lookups are not cached and events go straight to the publisher.
func NewSubmissionService(
	repo SubmissionGateway,
	v *validator.Validator,
	rdb *redis.Client,
	publisher events.Publisher,
	m *metrics.Metrics,
	cfg *config.Config,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		repo:        repo,
		validator:   v,
		rdb:         rdb,
		publisher:   publisher,
		metrics:     m,
		cacheTTL:    cfg.CacheTTL,
		maxAttempts: max(cfg.CreateMaxAttempts, 1),
		log:         log.With().Str("component", "submission_service").Logger(),
	}
}

// Create validates a raw JSON body and persists it. Validation failures are
// returned as *validator.ValidationError.
func (s *SubmissionService) Create(ctx context.Context, raw []byte) (*model.Submission, error) {
	in, err := s.validator.ValidateSubmission(raw)
	if err != nil {
		s.rejected(err)
		return nil, err
	}
	return s.create(ctx, in)
}

// CreateInput validates an already decoded input and persists it.
func (s *SubmissionService) CreateInput(ctx context.Context, in *model.SubmissionInput) (*model.Submission, error) {
	if err := s.validator.Validate(in); err != nil {
		s.rejected(err)
		return nil, err
	}
	return s.create(ctx, in)
}

func (s *SubmissionService) rejected(err error) {
	s.metrics.ValidationFailures.Inc()
	s.log.Debug().Err(err).Msg("Submission rejected")
}

func (s *SubmissionService) create(ctx context.Context, in *model.SubmissionInput) (*model.Submission, error) {
	generated := in.ReferenceNumber == ""
	attempts := 1
	if generated {
		attempts = s.maxAttempts
	}

	for attempt := 1; ; attempt++ {
		start := time.Now()
		sub, err := s.repo.Create(ctx, in)
		s.metrics.ObserveStore("create", start)

		if err == nil {
			s.metrics.SubmissionsCreated.Inc()
			s.log.Info().
				Str("reference_number", sub.ReferenceNumber).
				Bool("generated", generated).
				Msg("Submission created")
			s.cache(ctx, sub)
			s.notify(ctx, sub)
			return sub, nil
		}

		if !errors.Is(err, repository.ErrDuplicateReference) || !generated {
			return nil, err
		}

		s.metrics.ReferenceCollisions.Inc()
		s.log.Warn().Int("attempt", attempt).Msg("Generated reference number collided")
		if attempt >= attempts {
			return nil, fmt.Errorf("%w after %d attempts", ErrReferenceExhausted, attempts)
		}
	}
}

// GetByReference returns the submission with exactly this reference number.
func (s *SubmissionService) GetByReference(ctx context.Context, ref string) (*model.Submission, error) {
	// Nothing malformed can have been stored.
	if !reference.Valid(ref) {
		return nil, repository.ErrSubmissionNotFound
	}

	if sub, ok := s.cached(ctx, ref); ok {
		s.metrics.LookupCache.WithLabelValues("hit").Inc()
		return sub, nil
	}
	if s.rdb != nil {
		s.metrics.LookupCache.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	sub, err := s.repo.FindByReference(ctx, ref)
	s.metrics.ObserveStore("find_by_reference", start)
	if err != nil {
		return nil, err
	}

	s.cache(ctx, sub)
	return sub, nil
}

// List returns every submission, newest first. Always read from the store.
func (s *SubmissionService) List(ctx context.Context) ([]model.Submission, error) {
	start := time.Now()
	subs, err := s.repo.ListAll(ctx)
	s.metrics.ObserveStore("list_all", start)
	return subs, err
}

// Ping checks the store and, when configured, Redis.
func (s *SubmissionService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return err
	}
	if s.rdb != nil {
		if err := s.rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
	}
	return nil
}

// cached reads a submission from Redis. Submissions never change, so a hit is
// always current.
func (s *SubmissionService) cached(ctx context.Context, ref string) (*model.Submission, bool) {
	if s.rdb == nil {
		return nil, false
	}

	data, err := s.rdb.Get(ctx, config.CacheKey.SubmissionKey(ref)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("reference_number", ref).Msg("Cache read failed")
		}
		return nil, false
	}

	var sub model.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		s.log.Warn().Err(err).Str("reference_number", ref).Msg("Cache entry corrupt")
		return nil, false
	}
	return &sub, true
}

func (s *SubmissionService) cache(ctx context.Context, sub *model.Submission) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(sub)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, config.CacheKey.SubmissionKey(sub.ReferenceNumber), data, s.cacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("reference_number", sub.ReferenceNumber).Msg("Cache write failed")
	}
}

// notify queues the submission.created event for the notification worker, or
// publishes it directly when Redis is not configured. Failures never fail the
// request: the submission is already stored.
func (s *SubmissionService) notify(ctx context.Context, sub *model.Submission) {
	event := events.NewSubmissionCreated(sub)

	if s.rdb != nil {
		data, err := json.Marshal(event)
		if err == nil {
			err = s.rdb.RPush(ctx, config.WorkerKey.SubmissionCreatedQueue, data).Err()
		}
		if err == nil {
			s.metrics.EventsPublished.WithLabelValues("queued").Inc()
			return
		}
		s.log.Warn().Err(err).Str("reference_number", sub.ReferenceNumber).Msg("Queue push failed, publishing directly")
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.metrics.EventsPublished.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).Str("reference_number", sub.ReferenceNumber).Msg("Publish submission event failed")
		return
	}
	s.metrics.EventsPublished.WithLabelValues("published").Inc()
}
