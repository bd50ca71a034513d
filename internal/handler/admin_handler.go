package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edustar/intake-backend/internal/export"
	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/response"
	"github.com/edustar/intake-backend/internal/validator"
)

// AdminHandler serves the admin listing downloads.
type AdminHandler struct {
	service SubmissionService
	now     func() time.Time
	log     zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service SubmissionService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		now:     time.Now,
		log:     log.With().Str("component", "admin_handler").Logger(),
	}
}

// ExportSubmissions godoc
// GET /api/admin/submissions/export?format=csv|xlsx
// Streams every submission as a file download.
func (h *AdminHandler) ExportSubmissions(c *gin.Context) {
	var q model.ExportQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidQuery, fields)
		return
	}

	format, err := export.ParseFormat(q.Format)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidQuery, map[string]string{"format": err.Error()})
		return
	}

	subs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Export list failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrListFailed)
		return
	}

	// Render fully before writing so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, subs); err != nil {
		h.log.Error().Err(err).Str("format", string(format)).Msg("Export render failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrExportFailed)
		return
	}

	filename := export.Filename(format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())

	h.log.Info().Int("count", len(subs)).Str("format", string(format)).Msg("Submissions exported")
}
