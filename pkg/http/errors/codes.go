package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidAnswer  = "invalid_answer"
	ErrCodeInvalidEra     = "invalid_era"

	// Game flow errors
	ErrCodeNoActiveQuestion = "no_active_question"
	ErrCodeQuestionPending  = "question_pending"
	ErrCodeSessionOver      = "session_over"
	ErrCodeNotPlaying       = "not_playing"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"

	ErrCodeMethodNotAllowed = "method_not_allowed"
)
