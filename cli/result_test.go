package cli

import (
	stderrors "errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCommandError(t *testing.T) {
	t.Run("implements error interface", func(t *testing.T) {
		err := NewCommandError(1)
		assert.EqualError(t, err, "command failed")
	})

	t.Run("returns exit code", func(t *testing.T) {
		err := NewCommandError(42)
		assert.Equal(t, 42, err.ExitCode())
	})

	t.Run("supports errors.As", func(t *testing.T) {
		var err error = NewCommandError(ExitDiagnostics)
		var cmdErr *CommandError
		assert.True(t, stderrors.As(err, &cmdErr))
		assert.Equal(t, ExitDiagnostics, cmdErr.ExitCode())
	})

	t.Run("usage error wraps cause", func(t *testing.T) {
		cause := stderrors.New("no such file")
		err := usageError(cause)
		assert.Equal(t, ExitUsage, err.ExitCode())
		assert.EqualError(t, err, "no such file")
		assert.True(t, stderrors.Is(err, cause))
	})
}
