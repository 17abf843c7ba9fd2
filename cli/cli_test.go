package cli

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/flux/output"
)

func TestThemeNever(t *testing.T) {
	var buf bytes.Buffer
	th := newTheme(&buf, output.ColorNever)
	th.printSuccess(&buf, "done")
	th.printInfof(&buf, "watching %s", "x")
	assert.Equal(t, "✓ done\n→ watching x\n", buf.String())
}
