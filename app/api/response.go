package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayoussef/atlas/internal/apperr"
)

// Response represents a standardized API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error information
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Retryable  bool   `json:"retryable"`
}

// ListMeta represents list metadata
type ListMeta struct {
	Count int `json:"count"`
}

// SuccessResponse sends a successful response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListResponse sends a list response with count metadata
func ListResponse(c *gin.Context, message string, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    ListMeta{Count: count},
	})
}

// ValidationErrorResponse sends a validation error response
func ValidationErrorResponse(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   &ErrorInfo{Code: "VALIDATION_ERROR", Message: message},
	})
}

// ErrorResponseFromErr maps a classified application error to an HTTP
// response, carrying the taxonomy's description, recovery suggestion,
// and retryable flag.
func ErrorResponseFromErr(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.New(apperr.KindUnknown, err.Error(), err)
	}

	c.JSON(statusFor(appErr), Response{
		Success: false,
		Error: &ErrorInfo{
			Code:       string(appErr.Kind),
			Message:    appErr.Description(),
			Suggestion: appErr.RecoverySuggestion(),
			Retryable:  apperr.IsRetryable(appErr),
		},
	})
}

func statusFor(err *apperr.Error) int {
	switch err.Kind {
	case apperr.KindDataNotFound:
		return http.StatusNotFound
	case apperr.KindCountryAlreadyAdded, apperr.KindMaxCountriesReached:
		return http.StatusConflict
	case apperr.KindInvalidCountryCode, apperr.KindInvalidURL:
		return http.StatusBadRequest
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	case apperr.KindNoConnection, apperr.KindServerError, apperr.KindNoData:
		return http.StatusBadGateway
	case apperr.KindCancelled:
		return 499 // client closed request
	default:
		return http.StatusInternalServerError
	}
}
