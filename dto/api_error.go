package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
	Details   []string  `json:"details,omitempty"`
}

type ErrorCode string

const (
	InvalidPayload        ErrorCode = "invalid_payload"
	NotFound              ErrorCode = "not_found"
	Conflict              ErrorCode = "conflict"
	DeletionVetoed        ErrorCode = "deletion_vetoed"
	ReportBucketNotSet    ErrorCode = "report_bucket_not_configured"
	InternalServerError   ErrorCode = "internal_server_error"
	UnknownGridFormatCode ErrorCode = "unknown_grid_format"
)
