package helpers

import (
	"errors"
	"fmt"

	"nagios-autothreshold/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type AutoThresholdError struct {
	Message string
	Cause   error
}

func (e *AutoThresholdError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AutoThresholdError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As checks.
type ConfigurationError struct{ AutoThresholdError }
type UnsupportedUnitError struct{ AutoThresholdError }
type MalformedSampleError struct{ AutoThresholdError }
type RepositoryUnavailableError struct{ AutoThresholdError }
type EmptySampleSetError struct{ AutoThresholdError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{AutoThresholdError{Message: fmt.Sprintf(format, args...)}}
}

func NewUnsupportedUnitError(prefix string) error {
	return &UnsupportedUnitError{AutoThresholdError{Message: fmt.Sprintf("unsupported unit prefix %q", prefix)}}
}

func NewMalformedSampleError(text string) error {
	return &MalformedSampleError{AutoThresholdError{Message: fmt.Sprintf("malformed perfdata %q", text)}}
}

func NewRepositoryUnavailableError(operation string, cause error) error {
	return &RepositoryUnavailableError{AutoThresholdError{Message: fmt.Sprintf("repository unavailable during %s", operation), Cause: cause}}
}

func NewEmptySampleSetError() error {
	return &EmptySampleSetError{AutoThresholdError{Message: "no samples collected"}}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

// Process exit codes per error kind.
const (
	ExitOK = iota
	ExitGeneric
	ExitConfiguration
	ExitRepositoryUnavailable
	ExitMalformedSample
	ExitUnsupportedUnit
	ExitEmptySampleSet
)

type ErrorHandler struct {
	Logger *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: log}
}

// -----------------------------------------------------------------------------

// ExitCode maps an error to the process exit status for its kind.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cfgErr *ConfigurationError
	var repoErr *RepositoryUnavailableError
	var malformedErr *MalformedSampleError
	var unitErr *UnsupportedUnitError
	var emptyErr *EmptySampleSetError

	switch {
	case errors.As(err, &cfgErr):
		return ExitConfiguration
	case errors.As(err, &repoErr):
		return ExitRepositoryUnavailable
	case errors.As(err, &malformedErr):
		return ExitMalformedSample
	case errors.As(err, &unitErr):
		return ExitUnsupportedUnit
	case errors.As(err, &emptyErr):
		return ExitEmptySampleSet
	default:
		return ExitGeneric
	}
}

// -----------------------------------------------------------------------------

// Handle logs err under context and returns its exit code.
func (e *ErrorHandler) Handle(err error, context string) int {
	if err == nil {
		return ExitOK
	}
	code := ExitCode(err)
	e.Logger.Error("Error in %s (exit %d): %v", context, code, err)
	return code
}
