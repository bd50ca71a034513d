package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edustar/intake-backend/internal/config"
	"github.com/edustar/intake-backend/internal/events"
)

// errMalformed marks queue entries that can never be delivered.
var errMalformed = errors.New("malformed queue entry")

// NotificationWorker consumes submission_created_queue and hands each event
// to the publisher.
type NotificationWorker struct {
	rdb        *redis.Client
	publisher  events.Publisher
	queue      string
	retryDelay time.Duration
	log        zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(rdb *redis.Client, publisher events.Publisher, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		rdb:        rdb,
		publisher:  publisher,
		queue:      config.WorkerKey.SubmissionCreatedQueue,
		retryDelay: 5 * time.Second,
		log:        log.With().Str("component", "notification_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *NotificationWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			// Back off so a lost connection does not spin the loop.
			sleep(ctx, time.Second)
		}
		return
	}

	if len(result) < 2 {
		return
	}

	err = w.handle(ctx, result[1])
	switch {
	case err == nil:
	case errors.Is(err, errMalformed):
		w.log.Error().Err(err).Msg("Dropping queue entry")
	default:
		w.log.Error().Err(err).Msg("Publish error, retrying later")
		// Push back to queue for retry.
		w.rdb.RPush(context.WithoutCancel(ctx), w.queue, result[1])
		sleep(ctx, w.retryDelay)
	}
}

func (w *NotificationWorker) handle(ctx context.Context, raw string) error {
	var event events.SubmissionCreated
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	if event.ReferenceNumber == "" {
		return fmt.Errorf("%w: missing reference number", errMalformed)
	}

	if err := w.publisher.Publish(ctx, event); err != nil {
		return err
	}
	w.log.Debug().Str("reference_number", event.ReferenceNumber).Msg("Event published")
	return nil
}

// drain publishes all remaining items in the queue before shutdown.
func (w *NotificationWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, w.queue).Result()
		if err != nil {
			break
		}

		if err := w.handle(ctx, result); err != nil {
			if errors.Is(err, errMalformed) {
				w.log.Error().Err(err).Msg("Drain dropping entry")
				continue
			}
			w.log.Error().Err(err).Msg("Drain publish error")
			w.rdb.RPush(ctx, w.queue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
