package telemetry

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/robinvdvleuten/flux/output"
)

// TimingCollector collects hierarchical timing data. It is safe for
// concurrent use.
type TimingCollector struct {
	mu    sync.Mutex
	roots []*timerNode
	now   func() time.Time
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{now: time.Now}
}

// Start begins timing a top level operation.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: c.now()}
	c.roots = append(c.roots, node)
	return &timingTimer{collector: c, node: node}
}

// Report writes every top level operation as a tree.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	for _, span := range c.Snapshot() {
		formatTimingTree(w, span, styles)
	}
}

// Snapshot returns the collected timings. Children are ordered by start
// time. Timers that are still running report the time elapsed so far.
func (c *TimingCollector) Snapshot() []Span {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	spans := make([]Span, 0, len(c.roots))
	for _, root := range c.roots {
		spans = append(spans, root.span(now))
	}
	return spans
}

func (n *timerNode) span(now time.Time) Span {
	end := n.end
	if end.IsZero() {
		end = now
	}

	children := make([]*timerNode, len(n.children))
	copy(children, n.children)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].start.Before(children[j].start)
	})

	s := Span{Name: n.name, Duration: end.Sub(n.start)}
	for _, child := range children {
		s.Children = append(s.Children, child.span(now))
	}
	return s
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if t.node.end.IsZero() {
		t.node.end = t.collector.now()
	}
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{name: name, start: t.collector.now()}
	t.node.children = append(t.node.children, node)
	return &timingTimer{collector: t.collector, node: node}
}
