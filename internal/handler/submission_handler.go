package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/repository"
	"github.com/edustar/intake-backend/internal/response"
	"github.com/edustar/intake-backend/internal/validator"
)

// maxBodyBytes bounds a questionnaire request body.
const maxBodyBytes = 1 << 20

// SubmissionService is the business layer behind the submission endpoints.
type SubmissionService interface {
	Create(ctx context.Context, raw []byte) (*model.Submission, error)
	GetByReference(ctx context.Context, ref string) (*model.Submission, error)
	List(ctx context.Context) ([]model.Submission, error)
}

// SubmissionHandler handles the public questionnaire endpoints.
type SubmissionHandler struct {
	service SubmissionService
	log     zerolog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(service SubmissionService, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		log:     log.With().Str("component", "submission_handler").Logger(),
	}
}

// CreateSubmission godoc
// POST /api/submissions
// Validates and stores a questionnaire. Only the id and reference number are
// echoed back.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		response.FailValidation(c, http.StatusBadRequest, &validator.ValidationError{
			Errors: []validator.FieldError{{Message: "Request body could not be read"}},
		})
		return
	}

	sub, err := h.service.Create(c.Request.Context(), raw)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.FailValidation(c, http.StatusBadRequest, ve)
		case errors.Is(err, repository.ErrDuplicateReference):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Create submission failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrCreateFailed)
		}
		return
	}

	response.Success(c, http.StatusOK, model.CreateSubmissionResponse{
		ID:              sub.ID,
		ReferenceNumber: sub.ReferenceNumber,
	})
}

// ListSubmissions godoc
// GET /api/submissions
// Returns every submission, newest first.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	subs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("List submissions failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrListFailed)
		return
	}
	response.Success(c, http.StatusOK, subs)
}

// GetSubmission godoc
// GET /api/submissions/:referenceNumber
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	ref := c.Param("referenceNumber")

	sub, err := h.service.GetByReference(c.Request.Context(), ref)
	if err != nil {
		// A miss may be filled later, only hits are immutable.
		c.Header("Cache-Control", "no-store")
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Str("reference_number", ref).Msg("Get submission failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrFetchFailed)
		return
	}
	response.Success(c, http.StatusOK, sub)
}
