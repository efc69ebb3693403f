package errors

import (
	"fmt"
)

// ValidationError represents rejected user input; the workflow step is retried
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// CapabilityError represents a failed conversion capability; the session is cleared
type CapabilityError struct {
	Capability string
	Err        error
}

// Error returns the error message
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability %s failed: %v", e.Capability, e.Err)
}

// Unwrap returns the underlying error
func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// SessionError represents missing accumulated data for the current step
type SessionError struct {
	UserID int64
	State  string
}

// Error returns the error message
func (e *SessionError) Error() string {
	return fmt.Sprintf("session data missing for user %d in state %s", e.UserID, e.State)
}

// PermissionError represents an unauthorized admin action
type PermissionError struct {
	UserID int64
	Action string
}

// Error returns the error message
func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d is not authorized for %s", e.UserID, e.Action)
}
