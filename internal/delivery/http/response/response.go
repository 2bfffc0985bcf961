package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes sent in ErrorBody.Code. Clients branch on these, never on Message.
const (
	CodeInvalidRequest = "invalid_request"
	CodeInvalidCursor  = "invalid_cursor"
	CodeSignInRequired = "sign_in_required"
	CodeForbidden      = "forbidden"
	CodeNotFound       = "not_found"
	CodeRateLimited    = "rate_limited"
	CodeUnavailable    = "unavailable"
	CodeInternal       = "internal"
)

// Response is the envelope of every API answer.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends a failure with the default code for status.
func Error(c *gin.Context, status int, message string, details interface{}) {
	Fail(c, status, CodeFor(status), message, details)
}

func Fail(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, Response{
		Success:   false,
		Message:   message,
		Error:     &ErrorBody{Code: code, Details: details},
		RequestID: requestID(c),
	})
}

// CodeFor is the default error code of an HTTP status.
func CodeFor(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeInvalidRequest
	case http.StatusUnauthorized:
		return CodeSignInRequired
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	}
	return CodeInternal
}

func requestID(c *gin.Context) string {
	id, _ := c.Get("RequestID")
	s, _ := id.(string)
	return s
}
