package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// DB related errors
var (
	ErrIgnoreRollBackError = errors.New("ignore rollback error")
)

// Deletion related errors
var (
	ErrDeletionVetoed = errors.Wrap(ConflictError, "object is still referenced and cannot be deleted")
)

// Report related errors
var (
	ErrUnknownGridFormat = errors.Wrap(BadParameterError, "unknown grid format")
	ErrNoReportBucket    = errors.New("no report bucket configured")
)

type FieldValidationError map[string]string

func (e FieldValidationError) Error() string {
	return fmt.Sprintf("%v", map[string]string(e))
}
