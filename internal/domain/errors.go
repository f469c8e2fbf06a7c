package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or exists but belongs to another user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown budget tier, days out of range).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrMissingFields is the validation failure for a request that omits one or
// more required fields. errors.Is(ErrMissingFields, ErrValidation) is true.
var ErrMissingFields = fmt.Errorf("%w: missing required fields", ErrValidation)

// ErrDaysNotWhole is the validation failure for a fractional or non-numeric day count.
var ErrDaysNotWhole = fmt.Errorf("%w: days must be a whole number", ErrValidation)

// ErrConfiguration is returned when a required credential is not configured.
// It is always reported before any outbound call is attempted.
var ErrConfiguration = errors.New("configuration error")

// ErrCredential is returned when the text-generation provider rejects the
// configured credential.
var ErrCredential = errors.New("credential invalid")

// ErrGeneration is returned when the text-generation call fails for any
// reason other than a rejected credential.
var ErrGeneration = errors.New("generation failed")

// ErrPersistence is returned by service functions when the trip store fails.
// Handlers should map this to HTTP 500 without exposing the cause.
var ErrPersistence = errors.New("persistence failed")
