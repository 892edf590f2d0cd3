package targets

import (
	"errors"
	"fmt"
	"io"

	"github.com/datallboy/otmget/internal/domain"
)

// LineReader yields one trimmed line of user input.
type LineReader interface {
	ReadLine() (string, error)
}

// ConsoleConfirmer asks on the terminal. The literal answer "0" means no,
// anything else means yes. End of input means no.
type ConsoleConfirmer struct {
	In  LineReader
	Out io.Writer
}

func NewConsoleConfirmer(in LineReader, out io.Writer) *ConsoleConfirmer {
	return &ConsoleConfirmer{In: in, Out: out}
}

func (c *ConsoleConfirmer) Confirm(rec domain.Record) (bool, error) {
	fmt.Fprintf(c.Out, "Would you like a BaseCamp map for %s? Enter: 0 for no, else for yes. ", rec.Name)

	answer, err := c.In.ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(c.Out)
		return false, nil
	}
	return answer != "0", nil
}

// Always answers every question the same way.
type Always bool

func (a Always) Confirm(domain.Record) (bool, error) { return bool(a), nil }
