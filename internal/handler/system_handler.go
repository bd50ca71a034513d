package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edustar/intake-backend/internal/config"
	"github.com/edustar/intake-backend/internal/response"
)

const healthTimeout = 2 * time.Second

// Pinger checks a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler reports liveness and dependency health.
type SystemHandler struct {
	deps      Pinger
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler. rdb may be nil.
func NewSystemHandler(deps Pinger, rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		deps:      deps,
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type healthStatus struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	GoVersion  string `json:"goVersion"`
	Goroutines int    `json:"goroutines"`
	// Pending submission.created events; -1 without Redis.
	QueueDepth int64 `json:"queueDepth"`
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.deps.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Health check failed")
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable)
		return
	}

	status := healthStatus{
		Status:     "ok",
		Uptime:     formatDuration(time.Since(h.startTime)),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		QueueDepth: -1,
	}
	if h.rdb != nil {
		if n, err := h.rdb.LLen(ctx, config.WorkerKey.SubmissionCreatedQueue).Result(); err == nil {
			status.QueueDepth = n
		}
	}

	response.Success(c, http.StatusOK, status)
}

// ---------- Helpers ----------

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
