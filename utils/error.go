package utils

import (
	"errors"
	"net/http"

	"bookify/models"
	"bookify/services/ledger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
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
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// LedgerError maps a booking-ledger failure onto the right HTTP status and
// sends it. Callers pass any error from the ledger or availability layer.
func LedgerError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch ledger.CodeOf(err) {
	case ledger.CodeResourceNotFound, ledger.CodeBookingNotFound:
		status = http.StatusNotFound
	case ledger.CodeScheduleConflict, ledger.CodeCapacityExhausted, ledger.CodeInvalidTransition:
		status = http.StatusConflict
	case ledger.CodeResourceInactive, ledger.CodeOutsideWindow:
		status = http.StatusUnprocessableEntity
	case ledger.CodeUnknownCategory, ledger.CodeInvalidInterval:
		status = http.StatusBadRequest
	default:
		if errors.Is(err, models.ErrInvalidInterval) {
			status = http.StatusBadRequest
		}
	}
	GetLogger().Warn("ledger operation rejected", zap.Error(err))
	c.JSON(status, ErrorResponse{Code: string(ledger.CodeOf(err)), Message: err.Error()})
}
