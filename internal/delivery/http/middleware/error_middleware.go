package middleware

import (
	"errors"
	"net/http"

	"go-candidate-feed/internal/delivery/http/response"
	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/apperror"
	"go-candidate-feed/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(RequestIDKey)

		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed", "request_id", requestID, "status", appErr.Code, "error", err)
			}
			code := response.CodeFor(appErr.Code)
			if errors.Is(err, domain.ErrInvalidCursor) {
				code = response.CodeInvalidCursor
			}
			response.Fail(c, appErr.Code, code, appErr.Message, nil)
		case errors.Is(err, domain.ErrStoreUnavailable):
			logger.Log.Warn("store unavailable", "request_id", requestID, "error", err)
			response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
		case errors.Is(err, domain.ErrNotSignedIn):
			response.Error(c, http.StatusUnauthorized, "Need to sign in first", nil)
		case errors.Is(err, domain.ErrInvalidCursor):
			response.Fail(c, http.StatusBadRequest, response.CodeInvalidCursor, "Invalid cursor", nil)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Not found", nil)
		default:
			// Internal details stay in the log.
			logger.Log.Error("internal server error", "request_id", requestID, "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
