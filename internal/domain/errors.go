package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when the requested trip, draft, destination,
// activity, or catalog entry does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// NotFoundError names the missing resource when it is not the one the
// request addressed, such as a destination inside an existing draft.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Resource string // e.g. "destination", "catalog entry"
	ID       string
}

// NotFound returns a *NotFoundError for the resource and ID.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return e.Resource + " " + e.ID + ": " + ErrNotFound.Error()
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateDestination is returned when a catalog entry is added to a
// draft that already contains a destination with the same ID.
// It always travels wrapped together with ErrValidation, and its text is the
// message shown to the user.
var ErrDuplicateDestination = errors.New("This destination is already in your trip.")

// ErrPersistence is returned when the trip collection could not be written
// to the persistence slot. The mutation that triggered the write is discarded.
// Handlers should map this to HTTP 503.
var ErrPersistence = errors.New("persistence error")

const validationPrefix = "validation error: "

// ValidationMessage extracts the human-readable part of a wrapped validation
// error. e.g. "service.TripService.Create: validation error: Please enter a
// trip name." → "Please enter a trip name."
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, validationPrefix); i >= 0 {
		return msg[i+len(validationPrefix):]
	}
	return msg
}
