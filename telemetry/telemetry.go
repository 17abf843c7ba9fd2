// Package telemetry provides hierarchical timing collection for the stages a
// Flux source goes through: loading, parsing, checking and analysis.
//
// Collectors travel in a context so instrumented code does not change its
// signature. The timer that is currently running travels there as well,
// which lets concurrent work such as parsing several files at once attach
// its timers to the right parent.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	ctx, timer := telemetry.StartTimer(ctx, "check query.flux")
//	defer timer.End()
//
//	_, parse := telemetry.StartTimer(ctx, "parse")
//	// ... work ...
//	parse.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/robinvdvleuten/flux/output"
)

type contextKey int

const (
	collectorKey contextKey = iota
	timerKey
)

// Collector is the main interface for collecting telemetry data.
type Collector interface {
	// Start begins timing a top level operation and returns a Timer.
	Start(name string) Timer

	// Report writes the collected timings to w. styles may be nil.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation's timing.
type Timer interface {
	// End stops the timer. Calling End more than once keeps the first end time.
	End()

	// Child creates a timer nested under this one.
	Child(name string) Timer
}

// Span is a finished or running operation as returned by Snapshot.
type Span struct {
	Name     string
	Duration time.Duration
	Children []Span
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context. Without one it returns a
// collector that does nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// StartTimer starts a timer nested under the timer running in ctx, or a top
// level timer of the context's collector when none is running. The returned
// context carries the new timer.
func StartTimer(ctx context.Context, name string) (context.Context, Timer) {
	var timer Timer
	if parent, ok := ctx.Value(timerKey).(Timer); ok {
		timer = parent.Child(name)
	} else {
		timer = FromContext(ctx).Start(name)
	}
	return context.WithValue(ctx, timerKey, timer), timer
}
