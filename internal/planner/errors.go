package planner

import (
	"errors"
	"fmt"
)

// ErrTargetUncatalogued is wrapped by the advisory returned when a target
// system has no catalog entries and no grid was requested.
var ErrTargetUncatalogued = errors.New("target system has no catalog entries")

// Advisory is a user-facing message rather than a fault. Callers show
// Message as-is.
type Advisory struct {
	System  string
	Message string
}

func (a *Advisory) Error() string {
	return a.Message
}

func (a *Advisory) Unwrap() error {
	return ErrTargetUncatalogued
}

func uncatalogued(system string) *Advisory {
	return &Advisory{
		System: system,
		Message: fmt.Sprintf("No catalog entries found for %s. Provide targetRows and targetColumns, "+
			"or extend the catalog with a pageset for this system.", system),
	}
}

// ArgumentError reports a malformed request field.
type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Message)
}
