package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediflow/clinic-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Degraded bool        `json:"degraded,omitempty"`
	Error    *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 response for successful creates
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithSnapshot sends a read response, flagging degraded
// snapshots so clients can tell an empty collection from a failed load.
func RespondWithSnapshot(c *gin.Context, data interface{}, degraded bool) {
	c.JSON(http.StatusOK, Response{
		Success:  true,
		Data:     data,
		Degraded: degraded,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	if appErr, ok := err.(*errors.AppError); ok {
		statusCode = httpStatus(appErr.Code)
		message = appErr.Message
	}

	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    statusCode,
			Message: message,
		},
	})
}

func httpStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrValidation:
		return http.StatusBadRequest
	case errors.ErrTransportDegraded:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
