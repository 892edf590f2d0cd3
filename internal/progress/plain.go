package progress

import (
	"fmt"
	"io"
	"sync"
)

// countingStep is how often a download of unknown size reports, in bytes
const countingStep = 10 * 1024 * 1024

// Plain writes progress as lines, for output that is not a terminal.
// A line is printed at start, every 10% (or 10 MiB when the size is
// unknown) and at the end.
type Plain struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPlain(out io.Writer) *Plain {
	return &Plain{out: out}
}

func (p *Plain) Track(index int, name string, total int64) Indicator {
	size := "unknown size"
	if total >= 0 {
		size = FormatBytes(total)
	}
	p.printf("[%d] %s: started (%s)", index+1, name, size)

	return &plainIndicator{plain: p, index: index, name: name, total: total}
}

func (p *Plain) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format+"\n", args...)
}

type plainIndicator struct {
	plain   *Plain
	index   int
	name    string
	total   int64
	current int64
	step    int64
}

func (i *plainIndicator) Add(n int64) {
	i.current += n

	if i.total > 0 {
		step := i.current * 10 / i.total
		if step > i.step && step < 10 {
			i.step = step
			percent := float64(i.current) / float64(i.total) * 100
			i.plain.printf("[%d] %s: %s %5.1f%% | %s/%s", i.index+1, i.name,
				renderBar(percent, 20), percent, FormatBytes(i.current), FormatBytes(i.total))
		}
		return
	}

	if step := i.current / countingStep; step > i.step {
		i.step = step
		i.plain.printf("[%d] %s: %s", i.index+1, i.name, FormatBytes(i.current))
	}
}

func (i *plainIndicator) Done(err error) {
	if err != nil {
		i.plain.printf("[%d] %s: failed after %s: %v", i.index+1, i.name, FormatBytes(i.current), err)
		return
	}
	i.plain.printf("[%d] %s: done (%s)", i.index+1, i.name, FormatBytes(i.current))
}
