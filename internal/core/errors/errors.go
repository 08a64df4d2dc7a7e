package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpInvalidQueryError    = "invalid_query"
	HttpChartNotFoundError   = "chart_not_found"
	HttpDuplicateRecordError = "duplicate_record"
	HttpPayloadTooLargeError = "payload_too_large"
)

// ErrorResponse is the error response body shared by all handlers.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
