package services

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("sitesync-backend/services")

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Error kinds. Every *Error wraps exactly one of them.
var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrPreferenceMismatch = errors.New("preference mismatch")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Error carries a client facing message together with its kind and an
// optional underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func validationError(message string, err error) *Error {
	return &Error{Kind: ErrValidation, Message: message, Err: err}
}

var (
	ErrBookingWithoutTasks   = newError(ErrValidation, "Booking should have at least 1 task")
	ErrBookingNotFound       = newError(ErrNotFound, "Booking details not found")
	ErrInviteAlreadySent     = newError(ErrPreconditionFailed, "Booking already sent to contractor")
	ErrInviteNotFound        = newError(ErrNotFound, "No valid booking invitation to accept")
	ErrInviteNotAccepted     = newError(ErrPreconditionFailed, "Booking not accepted by contractor")
	ErrInviteAlreadyAccepted = newError(ErrPreconditionFailed, "Booking already accepted")
	ErrInviteAlreadyRejected = newError(ErrPreconditionFailed, "Booking already rejected")
	ErrQuoteAlreadyAccepted  = newError(ErrPreconditionFailed, "Quote already accepted")
	ErrQuoteNotFound         = newError(ErrNotFound, "Quote not found from this contractor in the booking")
	ErrNotMatchingPrefs      = newError(ErrPreferenceMismatch, "Contractor doesn't match all requirements")

	ErrProjectNotFound           = newError(ErrNotFound, "Project details not found")
	ErrCompletionAlreadySignaled = newError(ErrPreconditionFailed, "Project completion already signaled")
	ErrCompletionNotSignaled     = newError(ErrPreconditionFailed, "Project completion not signaled by contractor")
	ErrCompletionAlreadyAccepted = newError(ErrPreconditionFailed, "Project completion already accepted")

	ErrContractorNotFound = newError(ErrNotFound, "Contractor not found")
	ErrHomeownerNotFound  = newError(ErrNotFound, "Homeowner not found")
	ErrEmailRegistered    = newError(ErrPreconditionFailed, "Email already registered")
	ErrInvalidCredentials = newError(ErrUnauthorized, "Incorrect username or password")
)
