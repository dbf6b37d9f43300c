package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error to its HTTP status and writes the
// JSON error body. Unknown errors become a 500.
func RespondError(c *gin.Context, err error) {
	switch {
	case IsValidation(err):
		JSONError(c, http.StatusBadRequest, err.Error(), "")
	case IsNotFound(err):
		JSONError(c, http.StatusNotFound, err.Error(), "")
	case IsConflict(err):
		JSONError(c, http.StatusConflict, err.Error(), "")
	case IsInvalidState(err):
		JSONError(c, http.StatusUnprocessableEntity, err.Error(), "")
	default:
		JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
