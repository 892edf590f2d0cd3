package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{10 * 1024 * 1024, "10.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.n))
	}
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "[>   ]", renderBar(0, 4))
	assert.Equal(t, "[==> ]", renderBar(50, 4))
	assert.Equal(t, "[====]", renderBar(100, 4))
	assert.Equal(t, "[====]", renderBar(250, 4))
}

func TestPlainPercentMode(t *testing.T) {
	var out bytes.Buffer
	ind := NewPlain(&out).Track(0, "otm-alps.zip", 100)

	for range 10 {
		ind.Add(10)
	}
	ind.Done(nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// start, 10%..90%, done
	require.Len(t, lines, 11)
	assert.Equal(t, "[1] otm-alps.zip: started (100 B)", lines[0])
	assert.Contains(t, lines[5], " 50.0%")
	assert.Equal(t, "[1] otm-alps.zip: done (100 B)", lines[10])
}

func TestPlainCountingMode(t *testing.T) {
	var out bytes.Buffer
	ind := NewPlain(&out).Track(2, "otm-x.zip", -1)

	ind.Add(countingStep - 1)
	ind.Add(1)
	ind.Add(countingStep / 2)
	ind.Done(errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[3] otm-x.zip: started (unknown size)", lines[0])
	assert.Equal(t, "[3] otm-x.zip: 10.0 MiB", lines[1])
	assert.Equal(t, "[3] otm-x.zip: failed after 15.0 MiB: boom", lines[2])
}

func TestPlainIndicatorsAreIndependent(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(&out)
	a := p.Track(0, "a.zip", 10)
	b := p.Track(1, "b.zip", 10)

	a.Add(10)
	b.Add(5)
	a.Done(nil)
	b.Done(nil)

	assert.Contains(t, out.String(), "[1] a.zip: done (10 B)")
	assert.Contains(t, out.String(), "[2] b.zip: done (5 B)")
}

func TestNop(t *testing.T) {
	ind := Nop.Track(0, "x", 1)
	ind.Add(1)
	ind.Done(nil)
}

func update(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestModelRows(t *testing.T) {
	m := update(t, newModel(),
		startMsg{index: 1, name: "otm-b.zip", total: 200},
		startMsg{index: 0, name: "otm-a.zip", total: -1},
		advanceMsg{index: 1, n: 100},
		advanceMsg{index: 0, n: 2048},
		advanceMsg{index: 7, n: 1},
	)

	require.Equal(t, []int{1, 0}, m.order)
	assert.Equal(t, int64(100), m.rows[1].current)
	assert.Equal(t, int64(2048), m.rows[0].current)

	view := m.View()
	assert.Contains(t, view, "otm-b.zip")
	assert.Contains(t, view, "100 B/200 B")
	assert.Contains(t, view, "2.0 KiB")

	m = update(t, m,
		finishMsg{index: 1},
		finishMsg{index: 0, err: errors.New("connection reset")},
	)
	view = m.View()
	assert.Contains(t, view, "✓ 100 B")
	assert.Contains(t, view, "✗ connection reset")
}

func TestModelQuit(t *testing.T) {
	_, cmd := newModel().Update(quitMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
