package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/flux/output"
)

// slowThreshold marks operations that are highlighted in reports.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree outputs a span and its children, for example:
//
//	check query.flux: 12ms
//	├─ load: 9ms
//	│  ├─ parse a.flux: 4ms
//	│  └─ parse b.flux: 5ms
//	├─ check syntax: 0ms
//	└─ analyze: 3ms
func formatTimingTree(w io.Writer, root Span, styles *output.Styles) {
	name := root.Name
	if styles != nil {
		name = styles.Render(output.RoleHeading, name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.Duration))

	for i, child := range root.Children {
		formatNode(w, child, "", i == len(root.Children)-1, styles)
	}
}

func formatNode(w io.Writer, span Span, prefix string, isLast bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	timing := formatDuration(span.Duration)
	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim(prefix+branch), span.Name,
			styles.Timing(timing, span.Duration >= slowThreshold))
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, span.Name, timing)
	}

	for i, child := range span.Children {
		formatNode(w, child, prefix+extension, i == len(span.Children)-1, styles)
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
