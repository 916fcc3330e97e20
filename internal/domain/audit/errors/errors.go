package errors

import (
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
)

var (
	// ErrEmptyAction is returned when an entry has no action name
	ErrEmptyAction = pkgerrors.NewValidationError("audit action must not be empty")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
