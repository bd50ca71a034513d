package response

import (
	"github.com/gin-gonic/gin"

	"github.com/edustar/intake-backend/internal/validator"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error     string                 `json:"error"`
	Code      ErrCode                `json:"code"`
	Details   string                 `json:"details,omitempty"`
	Errors    []validator.FieldError `json:"errors,omitempty"`
	Fields    map[string]string      `json:"fields,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends data as the JSON body. Successful responses carry no envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, buildError(c, code))
}

// FailWithFields sends an error response with field-level binding details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	body := buildError(c, code)
	body.Fields = fields
	c.JSON(statusCode, body)
}

// FailValidation sends a 400 listing every offending field path.
func FailValidation(c *gin.Context, statusCode int, ve *validator.ValidationError) {
	body := buildError(c, ErrValidation)
	body.Details = ve.Error()
	body.Errors = ve.Errors
	c.JSON(statusCode, body)
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, buildError(c, code))
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func buildError(c *gin.Context, code ErrCode) ErrorBody {
	return ErrorBody{
		Error:     GetMessage(code),
		Code:      code,
		RequestID: RequestID(c),
	}
}
