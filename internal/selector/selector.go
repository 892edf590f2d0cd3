package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/datallboy/otmget/internal/domain"
)

const (
	promptText   = "Enter the number of the Maps you want to select (0 to finish): "
	invalidInput = "Invalid input. Please enter a valid number."
)

// Prompter asks the user to pick catalog records by number.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// SelectInteractive lists records and collects picks until the user enters 0
// or input ends. Picks may repeat; each one is kept.
func (p *Prompter) SelectInteractive(records []domain.Record) ([]domain.Record, error) {
	fmt.Fprintln(p.out, "Available Maps:")
	for i, r := range records {
		fmt.Fprintf(p.out, "%03d. %s\n", i+1, r.Name)
	}

	selected := make([]domain.Record, 0)
	for {
		fmt.Fprint(p.out, promptText)

		line, err := p.readLine()
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(p.out)
			return selected, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading selection: %w", err)
		}

		idx, perr := parseIndex(line, len(records))
		if perr != nil {
			fmt.Fprintln(p.out, invalidInput)
			if errors.Is(err, io.EOF) {
				return selected, nil
			}
			continue
		}

		if idx == 0 {
			return selected, nil
		}

		rec := records[idx-1]
		selected = append(selected, rec)
		fmt.Fprintf(p.out, "Selected: %s\n", rec.Name)

		if errors.Is(err, io.EOF) {
			return selected, nil
		}
	}
}

// ReadLine exposes the underlying reader so other prompts (the BaseCamp
// question) share its buffer instead of losing buffered input.
func (p *Prompter) ReadLine() (string, error) {
	return p.readLine()
}

func (p *Prompter) Out() io.Writer { return p.out }

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

// parseIndex accepts 0..n; anything else is an ErrInput.
func parseIndex(s string, n int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInput, s)
	}
	if idx < 0 || idx > n {
		return 0, fmt.Errorf("%w: %d is out of range", domain.ErrInput, idx)
	}
	return idx, nil
}

// SelectByName picks, for each name in order, every record whose name
// matches it case-insensitively. Unknown names are dropped.
func SelectByName(records []domain.Record, names []string) []domain.Record {
	selected := make([]domain.Record, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for _, r := range records {
			if strings.EqualFold(r.Name, name) {
				selected = append(selected, r)
			}
		}
	}
	return selected
}
