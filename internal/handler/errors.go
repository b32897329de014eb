package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/middleware"
	"events-web-app/pkg/utils"
)

const validationDetail = "One or more validation errors occurred."

// respondError renders err as problem details with the status of its kind.
// Errors of unknown kind are logged and hidden behind a 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verr *apperror.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ProblemResponse(c, http.StatusBadRequest, validationDetail, verr.Errors...)
	case apperror.IsValidation(err):
		utils.ProblemResponse(c, http.StatusBadRequest, err.Error())
	case apperror.IsNotFound(err):
		utils.ProblemResponse(c, http.StatusNotFound, err.Error())
	case apperror.IsConflict(err):
		utils.ProblemResponse(c, http.StatusConflict, err.Error())
	case apperror.IsUnauthorized(err):
		utils.ProblemResponse(c, http.StatusUnauthorized, err.Error())
	case apperror.IsForbidden(err):
		utils.ProblemResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, context.Canceled):
		// client went away, nobody reads the body
		c.AbortWithStatus(499)
	default:
		middleware.LoggerFrom(c, log).Error("Unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		utils.ProblemResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// badRequest reports a malformed body in the same shape as validation errors
func badRequest(c *gin.Context, err error) {
	utils.ProblemResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
}

// readUpload reads an uploaded file of at most maxBytes
func readUpload(fh *multipart.FileHeader, field string, maxBytes int64) ([]byte, error) {
	if fh.Size > maxBytes {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("file '%s' must be at most %d bytes", field, maxBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("file '%s' must be at most %d bytes", field, maxBytes))
	}
	return data, nil
}
