package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/flux/loader"
)

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{src: "a = 1", want: false},
		{src: "f = (r) => {", want: true},
		{src: "a = [1, 2", want: true},
		{src: "a = 1 +", want: true},
		{src: "a = )", want: false},
		{src: ":help", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, incomplete(tt.src))
		})
	}
}

func TestRepl(t *testing.T) {
	r := newRepl(loader.New())
	ctx := context.Background()

	lines, errs := r.eval(ctx, "a = 1")
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, []string{"a: t0"}, lines)

	lines, errs = r.eval(ctx, "b = a\noption now = () => 2")
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 2, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "b: t"))
	assert.True(t, strings.HasPrefix(lines[1], "option now: t"))

	// A rejected statement is not kept, but its source stays for diagnostics.
	_, errs = r.eval(ctx, "a = 2")
	assert.Equal(t, 1, len(errs))
	assert.Contains(t, errs[0].Error(), `variable "a" reassigned`)
	assert.Equal(t, 2, len(r.files))
	assert.Equal(t, "a = 2", r.sources["<repl:3>"])

	r.reset()
	lines, errs = r.eval(ctx, "a = 2")
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, []string{"a: t0"}, lines)
}

func TestReplDescribe(t *testing.T) {
	r := newRepl(loader.New())
	lines, errs := r.eval(context.Background(), "builtin from\noption a.b = 1\ntest t = () => 1\n1 + 2")
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 4, len(lines))
	assert.Equal(t, "builtin from", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "option a.b: t"))
	assert.True(t, strings.HasPrefix(lines[2], "test t: t"))
	assert.True(t, strings.HasPrefix(lines[3], "t"))
}
