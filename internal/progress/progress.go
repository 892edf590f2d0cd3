// Package progress displays per-archive download progress. Every tracked
// archive gets its own Indicator; indicators never share counters.
package progress

import (
	"fmt"
	"strings"
)

// Reporter hands out one Indicator per download.
type Reporter interface {
	// Track registers download index. total is the expected size in bytes,
	// or a negative value when the server did not announce one.
	Track(index int, name string, total int64) Indicator
}

// Indicator follows a single download. It is used from one goroutine only.
type Indicator interface {
	Add(n int64)
	Done(err error)
}

// Nop discards all progress.
var Nop Reporter = nopReporter{}

type nopReporter struct{}

func (nopReporter) Track(int, string, int64) Indicator { return nopIndicator{} }

type nopIndicator struct{}

func (nopIndicator) Add(int64)  {}
func (nopIndicator) Done(error) {}

// renderBar draws [=====>    ] for percent in 0..100.
func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	completedWidth := int(percent / 100 * float64(width))
	bar := strings.Repeat("=", completedWidth)
	if completedWidth < width {
		bar += ">" + strings.Repeat(" ", width-completedWidth-1)
	}
	return "[" + bar + "]"
}

// FormatBytes renders n with a binary unit, e.g. 12.5 MiB.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
