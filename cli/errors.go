package cli

import "fmt"

// CommandError provides structured error reporting for CLI commands.
type CommandError struct {
	Message    string
	Cause      error
	Suggestion string
	ExitCode   int
}

// Error implements the error interface.
func (e CommandError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "command failed"
}

// Unwrap exposes the wrapped error.
func (e CommandError) Unwrap() error {
	return e.Cause
}

// ExitStatus returns the process exit code associated with the error.
func (e CommandError) ExitStatus() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	return 1
}

// wrapError builds a CommandError with formatted messaging.
func wrapError(message string, cause error, suggestion string, exitCode int) error {
	msg := message
	if cause != nil && message == "" {
		msg = cause.Error()
	}
	return CommandError{
		Message:    msg,
		Cause:      cause,
		Suggestion: suggestion,
		ExitCode:   exitCode,
	}
}

// formatSuggestion formats a hint for display when suggestions are provided.
func formatSuggestion(hint string) string {
	return fmt.Sprintf("Hint: %s", hint)
}
