package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdftools/api"
	"pdftools/internal/logging"
	"pdftools/pkg/document"
)

var (
	errInvalidRequest    = api.Error{Code: "invalid_request", Detail: "Request must be multipart/form-data with a file field"}
	errInvalidInput      = api.Error{Code: "invalid_input", Detail: "Invalid input"}
	errAlreadyEncrypted  = api.Error{Code: "already_encrypted", Detail: "PDF is already password protected"}
	errNotEncrypted      = api.Error{Code: "not_encrypted", Detail: "PDF is not password protected"}
	errIncorrectPassword = api.Error{Code: "incorrect_password", Detail: "Incorrect password"}
	errFileTooLarge      = api.Error{Code: "file_too_large", Detail: "File exceeds the maximum upload size"}
	errDependencyMissing = api.Error{Code: "dependency_missing", Detail: "A required external tool is not installed"}
	errTimeout           = api.Error{Code: "timeout", Detail: "Processing took too long and was stopped"}
	errToolFailed        = api.Error{Code: "tool_failed", Detail: "The external tool failed to process the file"}
	errInternal          = api.Error{Code: "internal_error", Detail: "An unexpected error occurred"}
)

// errorResponse maps err to a status and body. Details of tool failures and internal errors stay in
// the logs; user errors carry their message.
func errorResponse(err error) (int, api.Error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr), errors.Is(err, document.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, errFileTooLarge.WithDetail(err.Error())
	case errors.Is(err, document.ErrAlreadyEncrypted):
		return http.StatusBadRequest, errAlreadyEncrypted
	case errors.Is(err, document.ErrNotEncrypted):
		return http.StatusBadRequest, errNotEncrypted
	case errors.Is(err, document.ErrIncorrectPassword):
		return http.StatusBadRequest, errIncorrectPassword
	case errors.Is(err, document.ErrInvalidInput):
		return http.StatusBadRequest, errInvalidInput.WithDetail(err.Error())
	case errors.Is(err, document.ErrDependencyMissing):
		return http.StatusServiceUnavailable, errDependencyMissing.WithDetail(err.Error())
	case errors.Is(err, document.ErrTimeout):
		return http.StatusGatewayTimeout, errTimeout
	case errors.Is(err, document.ErrToolFailed):
		return http.StatusInternalServerError, errToolFailed
	}
	return http.StatusInternalServerError, errInternal
}

func handleError(ctx *gin.Context, logger *logging.Logger, err error, msg string) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.WithError(err).Error(msg, "status", status)
	} else {
		logger.WithError(err).Warn(msg, "status", status)
	}
	ctx.AbortWithStatusJSON(status, body)
}

func handleBindError(ctx *gin.Context, logger *logging.Logger, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		handleError(ctx, logger, err, "Upload exceeded the size limit")
		return
	}
	logger.WithError(err).Warn("Error binding request")
	ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidRequest.WithDetail(err.Error()))
}
