package errors

import (
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
)

var (
	// ErrChannelExists is returned when a concurrent registration already
	// created the channel row
	ErrChannelExists = pkgerrors.NewConflictError("channel already exists")

	// ErrLinkExists is returned when a concurrent call already created the
	// membership link
	ErrLinkExists = pkgerrors.NewConflictError("user is already linked to channel")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)

// ChannelNotFound is returned when the channel does not exist
func ChannelNotFound(id int64) error {
	return pkgerrors.NewNotFoundError("channel", id)
}

// MembershipNotFound is returned when the user has no role on the channel
func MembershipNotFound(userID int64) error {
	return pkgerrors.NewNotFoundError("membership", userID)
}
