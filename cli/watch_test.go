package cli

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestWatcherRelevant(t *testing.T) {
	file := &watcher{target: "/src/query.flux"}
	assert.True(t, file.relevant("/src/query.flux"))
	assert.True(t, file.relevant("/src/./query.flux"))
	assert.False(t, file.relevant("/src/other.flux"))

	dir := &watcher{}
	assert.True(t, dir.relevant("/src/other.flux"))
	assert.False(t, dir.relevant("/src/query.flux~"))
	assert.False(t, dir.relevant("/src/.query.flux.swp"))
}
