package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", NewValidationError("bad input"), IsValidationError},
		{"not found", NewNotFoundError("post", 42), IsNotFoundError},
		{"conflict", NewConflictError("duplicate"), IsConflictError},
		{"permission", NewPermissionError("editor", "admin"), IsPermissionError},
		{"state transition", NewStateTransitionError("published", "draft"), IsStateTransitionError},
		{"database", NewDatabaseError("connection refused"), IsDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestPredicates_RejectOtherTypes(t *testing.T) {
	err := NewValidationError("bad input")
	assert.False(t, IsNotFoundError(err))
	assert.False(t, IsPermissionError(err))
	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestPermissionError_CarriesRoles(t *testing.T) {
	err := NewPermissionError("editor", "admin")

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, "editor", permErr.ActingRole)
	assert.Equal(t, "admin", permErr.RequiredRole)
	assert.Contains(t, err.Error(), "editor")
	assert.Contains(t, err.Error(), "admin")
}

func TestStateTransitionError_CarriesStatuses(t *testing.T) {
	err := NewStateTransitionError("published", "draft")

	var stErr *StateTransitionError
	require.ErrorAs(t, err, &stErr)
	assert.Equal(t, "published", stErr.From)
	assert.Equal(t, "draft", stErr.To)
}

func TestNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError("channel", 7)
	assert.Equal(t, "channel 7 not found", err.Error())
}

func TestMapper_MapErrorToHttp(t *testing.T) {
	mapper := NewMapper()

	tests := []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewNotFoundError("post", 1), http.StatusNotFound},
		{NewConflictError("dup"), http.StatusConflict},
		{NewPermissionError("analyst", "owner"), http.StatusForbidden},
		{NewStateTransitionError("deleted", "queued"), http.StatusUnprocessableEntity},
		{NewDatabaseError("down"), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		code, _ := mapper.MapErrorToHttp(tt.err)
		assert.Equal(t, tt.code, code)
	}
}

func TestMapper_HidesDatabaseDetails(t *testing.T) {
	mapper := NewMapper()

	_, msg := mapper.MapErrorToHttp(NewDatabaseError("password leaked in dsn"))
	assert.Equal(t, "internal server error", msg)
}
