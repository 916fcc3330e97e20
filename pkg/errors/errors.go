package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for domain errors
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PermissionError is returned when the acting role does not subsume the
// role required for the operation
type PermissionError struct {
	ActingRole   string
	RequiredRole string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %s lacks permission for %s", e.ActingRole, e.RequiredRole)
}

// StateTransitionError is returned when a post status change violates the
// post state machine
type StateTransitionError struct {
	From string
	To   string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

type DatabaseError struct {
	Message string
}

func (e *DatabaseError) Error() string {
	return e.Message
}

// Constructors
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

func NewNotFoundError(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

func NewPermissionError(acting, required string) error {
	return &PermissionError{ActingRole: acting, RequiredRole: required}
}

func NewStateTransitionError(from, to string) error {
	return &StateTransitionError{From: from, To: to}
}

func NewDatabaseError(msg string) error {
	return &DatabaseError{Message: msg}
}

// Type checks
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflictError(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsPermissionError(err error) bool {
	var e *PermissionError
	return errors.As(err, &e)
}

func IsStateTransitionError(err error) bool {
	var e *StateTransitionError
	return errors.As(err, &e)
}

func IsDatabaseError(err error) bool {
	var e *DatabaseError
	return errors.As(err, &e)
}

// Mapper maps domain errors to HTTP status codes
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

func (m *Mapper) MapErrorToHttp(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}

	switch {
	case IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case IsNotFoundError(err):
		return http.StatusNotFound, err.Error()
	case IsConflictError(err):
		return http.StatusConflict, err.Error()
	case IsPermissionError(err):
		return http.StatusForbidden, err.Error()
	case IsStateTransitionError(err):
		return http.StatusUnprocessableEntity, err.Error()
	case IsDatabaseError(err):
		return http.StatusInternalServerError, "internal server error"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
