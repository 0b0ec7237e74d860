package handlers

import (
	"errors"
	"net/http"

	"authgate"
	"authgate/internal/service"

	"github.com/gin-gonic/gin"
)

// User-facing messages. Clients display these verbatim.
const (
	msgCredentialsRequired = "Username and password are required"
	msgEmptyUsername       = "Empty username"
	msgEmptyPassword       = "Empty password"
	msgUsernameTaken       = "Username already taken"
	msgUserNotFound        = "User not found"
	msgInvalidPassword     = "Invalid password"
	msgInvalidBody         = "Invalid request body"
	msgServerError         = "Server error"

	msgRegistered = "User registered successfully"
)

// publicErrors maps service failures to the 400 response clients see. Order matters only
// for readability; the sentinels are disjoint.
var publicErrors = []struct {
	err error
	msg string
}{
	{service.ErrCredentialsRequired, msgCredentialsRequired},
	{service.ErrEmptyUsername, msgEmptyUsername},
	{service.ErrEmptyPassword, msgEmptyPassword},
	{service.ErrUsernameTaken, msgUsernameTaken},
	{service.ErrUserNotFound, msgUserNotFound},
	{service.ErrInvalidPassword, msgInvalidPassword},
}

// statusAndMessage classifies err. Anything that is not a known client error is a 500
// with a generic message.
func statusAndMessage(err error) (int, string) {
	for _, pe := range publicErrors {
		if errors.Is(err, pe.err) {
			return http.StatusBadRequest, pe.msg
		}
	}
	return http.StatusInternalServerError, msgServerError
}

// respondError writes the mapped error. Server errors are logged with their cause; client
// errors only with the event key and the fields passed in kv.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code, msg := statusAndMessage(err)
	fields := append([]interface{}{"err", err}, kv...)
	if code >= http.StatusInternalServerError {
		h.log.Errorw(logKey, fields...)
	} else {
		h.log.Infow(logKey, fields...)
	}
	c.JSON(code, authgate.ErrorResponse{Message: msg})
}
