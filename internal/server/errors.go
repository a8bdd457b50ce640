// Package server provides the HTTP REST API for the recruiting pipeline.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/gftan/agentic-recruiter/internal/pipeline"
)

// ErrNotFound indicates a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrSetupComplete indicates first-run setup has already been done
type ErrSetupComplete struct{}

func (e *ErrSetupComplete) Error() string {
	return "setup has already been completed"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *ErrNotFound
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var candNotFound *pipeline.ErrCandidateNotFound
	if errors.As(err, &candNotFound) {
		return http.StatusNotFound
	}
	var validation *ErrValidation
	if errors.As(err, &validation) || pipeline.IsValidation(err) {
		return http.StatusBadRequest
	}
	var invalidCreds *ErrInvalidCredentials
	if errors.As(err, &invalidCreds) {
		return http.StatusUnauthorized
	}
	var setupDone *ErrSetupComplete
	if errors.As(err, &setupDone) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
