package telemetry

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/flux/output"
)

// steppingClock advances by step on every reading.
func steppingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

func newTestCollector() *TimingCollector {
	c := NewTimingCollector()
	c.now = steppingClock(time.Millisecond)
	return c
}

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("test")
	timer.Child("child").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	collector := FromContext(context.Background())
	_, ok := collector.(noOpCollector)
	assert.True(t, ok, "got %T", collector)
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	retrieved, ok := FromContext(ctx).(*TimingCollector)
	assert.True(t, ok)
	assert.True(t, retrieved == collector)
}

func TestStartTimerWithoutCollector(t *testing.T) {
	ctx, timer := StartTimer(context.Background(), "parse")
	_, child := StartTimer(ctx, "scan")
	child.End()
	timer.End()

	_, ok := timer.(noOpTimer)
	assert.True(t, ok, "got %T", timer)
}

func TestStartTimerNesting(t *testing.T) {
	collector := newTestCollector()
	ctx := WithCollector(context.Background(), collector)

	ctx, root := StartTimer(ctx, "check")
	loadCtx, load := StartTimer(ctx, "load")
	_, parse := StartTimer(loadCtx, "parse a.flux")
	parse.End()
	load.End()
	_, analyze := StartTimer(ctx, "analyze")
	analyze.End()
	root.End()

	spans := collector.Snapshot()
	assert.Equal(t, 1, len(spans))
	assert.Equal(t, "check", spans[0].Name)
	assert.Equal(t, 2, len(spans[0].Children))
	assert.Equal(t, "load", spans[0].Children[0].Name)
	assert.Equal(t, "parse a.flux", spans[0].Children[0].Children[0].Name)
	assert.Equal(t, "analyze", spans[0].Children[1].Name)
	assert.Equal(t, time.Millisecond, spans[0].Children[0].Children[0].Duration)
}

func TestConcurrentChildren(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)
	ctx, root := StartTimer(ctx, "load")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, timer := StartTimer(ctx, "parse")
			timer.End()
		}()
	}
	wg.Wait()
	root.End()

	spans := collector.Snapshot()
	assert.Equal(t, 16, len(spans[0].Children))
}

func TestEndTwiceKeepsFirst(t *testing.T) {
	collector := newTestCollector()

	timer := collector.Start("op")
	timer.End()
	timer.End()

	assert.Equal(t, time.Millisecond, collector.Snapshot()[0].Duration)
}

func TestReport(t *testing.T) {
	collector := newTestCollector()

	root := collector.Start("check query.flux")
	load := root.Child("load")
	load.Child("parse a.flux").End()
	load.Child("parse b.flux").End()
	load.End()
	root.Child("analyze").End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	expected := "check query.flux: 9ms\n" +
		"├─ load: 5ms\n" +
		"│  ├─ parse a.flux: 1ms\n" +
		"│  └─ parse b.flux: 1ms\n" +
		"└─ analyze: 1ms\n"
	assert.Equal(t, expected, buf.String())
}

func TestReportWithStyles(t *testing.T) {
	collector := newTestCollector()
	root := collector.Start("check")
	root.Child("parse").End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, output.NewStylesWithMode(&buf, output.ColorNever))
	assert.Equal(t, "check: 3ms\n└─ parse: 1ms\n", buf.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0ms"},
		{1500 * time.Microsecond, "2ms"},
		{999 * time.Millisecond, "999ms"},
		{1250 * time.Millisecond, "1.25s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.input))
		})
	}
}
