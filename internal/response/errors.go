package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation   ErrCode = "VALIDATION_ERROR"
	ErrInvalidQuery ErrCode = "INVALID_QUERY"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrCreateFailed ErrCode = "CREATE_FAILED"
	ErrListFailed   ErrCode = "LIST_FAILED"
	ErrFetchFailed  ErrCode = "FETCH_FAILED"
	ErrExportFailed ErrCode = "EXPORT_FAILED"
	ErrUnavailable  ErrCode = "SERVICE_UNAVAILABLE"
	ErrInternal     ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed"
	case ErrInvalidQuery:
		return "Invalid query parameters"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Submission not found"
	case ErrConflict:
		return "Reference number already in use"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many submissions. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrCreateFailed:
		return "Failed to create submission"
	case ErrListFailed:
		return "Failed to fetch submissions"
	case ErrFetchFailed:
		return "Failed to fetch submission"
	case ErrExportFailed:
		return "Failed to export submissions"
	case ErrUnavailable:
		return "Service unavailable"
	case ErrInternal:
		return "Internal server error"
	default:
		return "An unexpected error occurred"
	}
}
