package cli

// Exit codes returned through CommandError.
const (
	ExitDiagnostics = 1 // The input has syntax, semantic or check errors
	ExitUsage       = 2 // The input could not be read or the flags are invalid
)

// CommandError signals a command failure with a specific exit code.
// Commands return this after handling all output (printing errors to stderr).
// Main centralizes exit handling instead of commands calling os.Exit directly.
type CommandError struct {
	exitCode int
	err      error
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return "command failed"
}

// Unwrap returns the error that caused the failure, if any.
func (e *CommandError) Unwrap() error { return e.err }

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// usageError wraps err so main exits with ExitUsage.
func usageError(err error) *CommandError {
	return &CommandError{exitCode: ExitUsage, err: err}
}
