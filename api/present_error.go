package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/dhis2/approval-backend/dto"
	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
	"github.com/dhis2/approval-backend/utils"
)

func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	logger := utils.LoggerFromContext(ctx)
	errorResponse := dto.APIErrorResponse{Message: err.Error()}
	status := http.StatusInternalServerError

	var validationErrors validator.ValidationErrors
	var unmarshalTypeError *json.UnmarshalTypeError
	var fieldValidationError models.FieldValidationError

	switch {
	case errors.As(err, &validationErrors):
		status = http.StatusBadRequest
		errorResponse.ErrorCode = dto.InvalidPayload
		errorResponse.Message = "invalid payload"
		errorResponse.Details = pure_utils.Map(validationErrors, adaptFieldValidationError)

	case errors.As(err, &unmarshalTypeError):
		status = http.StatusBadRequest
		errorResponse.ErrorCode = dto.InvalidPayload
		errorResponse.Message = "invalid payload"
		errorResponse.Details = []string{fmt.Sprintf("field `%s` expected type %s, got type %s",
			unmarshalTypeError.Field, unmarshalTypeError.Type.String(), unmarshalTypeError.Value)}

	case errors.As(err, &fieldValidationError):
		status = http.StatusBadRequest
		errorResponse.ErrorCode = dto.InvalidPayload
		for field, message := range fieldValidationError {
			errorResponse.Details = append(errorResponse.Details, fmt.Sprintf("field `%s` %s", field, message))
		}

	case errors.Is(err, models.ErrUnknownGridFormat):
		status = http.StatusBadRequest
		errorResponse.ErrorCode = dto.UnknownGridFormatCode

	case errors.Is(err, models.BadParameterError), errors.Is(err, io.EOF):
		status = http.StatusBadRequest
		errorResponse.ErrorCode = dto.InvalidPayload

	case errors.Is(err, models.UnAuthorizedError):
		status = http.StatusUnauthorized

	case errors.Is(err, models.ForbiddenError):
		status = http.StatusForbidden

	case errors.Is(err, models.NotFoundError), errors.Is(err, pgx.ErrNoRows):
		status = http.StatusNotFound
		errorResponse.ErrorCode = dto.NotFound

	case errors.Is(err, models.ErrDeletionVetoed):
		status = http.StatusConflict
		errorResponse.ErrorCode = dto.DeletionVetoed

	case errors.Is(err, models.ConflictError):
		status = http.StatusConflict
		errorResponse.ErrorCode = dto.Conflict

	case errors.Is(err, models.ErrNoReportBucket):
		status = http.StatusNotImplemented
		errorResponse.ErrorCode = dto.ReportBucketNotSet
	}

	if status == http.StatusInternalServerError {
		utils.LogAndReportSentryError(ctx, err)
		errorResponse = dto.APIErrorResponse{
			Message:   "an unexpected error occurred",
			ErrorCode: dto.InternalServerError,
		}
	} else {
		logger.InfoContext(ctx, fmt.Sprintf("%d error: %v", status, err))
	}

	c.JSON(status, errorResponse)
	return true
}

// bindingError marks a request binding failure as a bad parameter, keeping the validation details.
func bindingError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, models.BadParameterError)
}
