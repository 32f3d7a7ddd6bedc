package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidAnswer  ErrCode = "INVALID_ANSWER_INPUT"

	// ─── Interview lifecycle ───────────────────────────────────────────
	ErrUnknownCategory       ErrCode = "UNKNOWN_CATEGORY"
	ErrInsufficientQuestions ErrCode = "INSUFFICIENT_QUESTIONS"
	ErrSessionNotFound       ErrCode = "SESSION_NOT_FOUND"
	ErrSessionCompleted      ErrCode = "SESSION_ALREADY_COMPLETED"
	ErrAnswerConflict        ErrCode = "ANSWER_ALREADY_SUBMITTED"
	ErrReportNotReady        ErrCode = "REPORT_NOT_READY"

	// ─── Infrastructure ────────────────────────────────────────────────
	ErrEmbeddingUnavailable ErrCode = "EMBEDDING_UNAVAILABLE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// messages maps every error code to its human-readable message.
var messages = map[ErrCode]string{
	ErrValidation:            "Validation failed. Please check your input.",
	ErrInvalidID:             "Invalid identifier format.",
	ErrInvalidPayload:        "Invalid request payload.",
	ErrInvalidAnswer:         "The answer payload is invalid or too long.",
	ErrUnknownCategory:       "Unknown interview category.",
	ErrInsufficientQuestions: "Not enough questions available in this category.",
	ErrSessionNotFound:       "Interview session not found.",
	ErrSessionCompleted:      "This interview is already completed.",
	ErrAnswerConflict:        "An answer for this question was already submitted.",
	ErrReportNotReady:        "The final report is not ready yet.",
	ErrEmbeddingUnavailable:  "The scoring service is temporarily unavailable. Please try again.",
	ErrNotFound:              "Resource not found.",
	ErrRateLimitExceeded:     "Too many requests. Please try again later.",
	ErrInternal:              "An internal server error occurred.",
}

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "An unexpected error occurred."
}
