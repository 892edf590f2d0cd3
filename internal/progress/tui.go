package progress

import (
	"fmt"
	"io"
	"strings"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	nameWidth       = 34
	defaultBarWidth = 40
)

var (
	nameStyle  = lipgloss.NewStyle().Width(nameWidth).MaxWidth(nameWidth)
	statsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Messages sent from the download workers into the program loop.
type (
	startMsg struct {
		index int
		name  string
		total int64
	}
	advanceMsg struct {
		index int
		n     int64
	}
	finishMsg struct {
		index int
		err   error
	}
	quitMsg struct{}
)

// TUI renders one bar per download in a bubbletea program. Indicators
// send messages to the program; only its event loop touches the rows.
type TUI struct {
	program *tea.Program
	done    chan struct{}
	err     error
}

// NewTUI starts the program writing to out. Keyboard input is not read so
// Ctrl+C reaches the process signal handler.
func NewTUI(out io.Writer) *TUI {
	t := &TUI{done: make(chan struct{})}
	t.program = tea.NewProgram(newModel(),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	go func() {
		defer close(t.done)
		_, t.err = t.program.Run()
	}()

	return t
}

func (t *TUI) Track(index int, name string, total int64) Indicator {
	t.program.Send(startMsg{index: index, name: name, total: total})
	return &tuiIndicator{program: t.program, index: index}
}

// Wait renders the final state and stops the program.
func (t *TUI) Wait() error {
	t.program.Send(quitMsg{})
	<-t.done
	return t.err
}

type tuiIndicator struct {
	program *tea.Program
	index   int
}

func (i *tuiIndicator) Add(n int64) {
	i.program.Send(advanceMsg{index: i.index, n: n})
}

func (i *tuiIndicator) Done(err error) {
	i.program.Send(finishMsg{index: i.index, err: err})
}

type row struct {
	name    string
	total   int64
	current int64
	done    bool
	err     error
	bar     progressbar.Model
}

type model struct {
	rows     map[int]*row
	order    []int
	spinner  spinner.Model
	barWidth int
}

func newModel() model {
	return model{
		rows:     make(map[int]*row),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		barWidth: defaultBarWidth,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// name column, bar, and room for the byte counts
		m.barWidth = max(10, min(defaultBarWidth, msg.Width-nameWidth-30))
		for _, r := range m.rows {
			r.bar.Width = m.barWidth
		}

	case startMsg:
		if _, ok := m.rows[msg.index]; !ok {
			m.order = append(m.order, msg.index)
		}
		m.rows[msg.index] = &row{
			name:  msg.name,
			total: msg.total,
			bar:   progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(m.barWidth)),
		}

	case advanceMsg:
		if r, ok := m.rows[msg.index]; ok {
			r.current += msg.n
		}

	case finishMsg:
		if r, ok := m.rows[msg.index]; ok {
			r.done = true
			r.err = msg.err
		}

	case quitMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	for _, idx := range m.order {
		b.WriteString(m.renderRow(m.rows[idx]))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m model) renderRow(r *row) string {
	name := nameStyle.Render(r.name)

	switch {
	case r.done && r.err != nil:
		return name + failStyle.Render("✗ "+r.err.Error())
	case r.done:
		return name + doneStyle.Render("✓ "+FormatBytes(r.current))
	case r.total > 0:
		ratio := float64(r.current) / float64(r.total)
		return name + r.bar.ViewAs(min(ratio, 1)) + " " +
			statsStyle.Render(fmt.Sprintf("%s/%s", FormatBytes(r.current), FormatBytes(r.total)))
	default:
		// size unknown: count bytes only
		return name + m.spinner.View() + " " + statsStyle.Render(FormatBytes(r.current))
	}
}
