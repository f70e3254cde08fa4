package ledger

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a booking-ledger failure kind. All failures are
// deterministic validation errors; callers match on the code and react.
type ErrorCode string

const (
	CodeResourceNotFound  ErrorCode = "resourceNotFound"
	CodeResourceInactive  ErrorCode = "resourceInactive"
	CodeBookingNotFound   ErrorCode = "bookingNotFound"
	CodeUnknownCategory   ErrorCode = "unknownCategory"
	CodeCapacityExhausted ErrorCode = "capacityExhausted"
	CodeScheduleConflict  ErrorCode = "scheduleConflict"
	CodeOutsideWindow     ErrorCode = "outsideAvailabilityWindow"
	CodeInvalidTransition ErrorCode = "invalidTransition"
	CodeInvalidInterval   ErrorCode = "invalidInterval"
)

// Error carries a machine-matchable code alongside a human message.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ledger error code, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
