package errors

import (
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
)

var (
	// ErrEmptyChannelList is returned when a post tries to leave draft with
	// no target channels
	ErrEmptyChannelList = pkgerrors.NewValidationError("post has no target channels")

	// ErrInvalidParseMode is returned for parse modes outside HTML/Markdown/None
	ErrInvalidParseMode = pkgerrors.NewValidationError("invalid parse mode")

	// ErrStatusNotPatchable is returned when a field patch tries to change
	// the status directly instead of going through a transition
	ErrStatusNotPatchable = pkgerrors.NewValidationError("status cannot be patched directly")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)

// PostNotFound is returned when the post does not exist
func PostNotFound(id int64) error {
	return pkgerrors.NewNotFoundError("post", id)
}
