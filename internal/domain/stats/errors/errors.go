package errors

import (
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
)

var (
	// ErrNegativeDelta is returned for a negative increment; counters never
	// decrease
	ErrNegativeDelta = pkgerrors.NewValidationError("counter delta must be non-negative")

	// ErrEmptyKey is returned when the button key or emoji is empty
	ErrEmptyKey = pkgerrors.NewValidationError("counter key must not be empty")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
