// Package progress shows a spinner while a hook entry runs with captured
// output, so a slow entry does not look like a hung commit.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/palotasb/githooks/internal/ui/styles"
)

// elapsedAfter is how long an entry runs before its elapsed time is shown.
const elapsedAfter = 2 * time.Second

// Spinner draws "<frame> <label>" on out until stopped. It reads no input.
type Spinner struct {
	out   io.Writer
	label string

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	started time.Time
	now     func() time.Time
}

func newModel(label string, now func() time.Time) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.PrimaryStyle
	return spinnerModel{spinner: sp, label: label, started: now(), now: now}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(m.line())
}

func (m spinnerModel) line() string {
	if m.label == "" {
		return ""
	}
	s := m.spinner.View() + " " + m.label
	if d := m.now().Sub(m.started); d >= elapsedAfter {
		s += styles.MutedStyle.Render(fmt.Sprintf(" (%s)", d.Truncate(time.Second)))
	}
	return s
}

// NewSpinner creates a spinner for label that draws to out, usually a
// terminal stderr.
func NewSpinner(out io.Writer, label string) *Spinner {
	return &Spinner{out: out, label: label}
}

// Start begins the animation. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program != nil {
		return
	}

	// No input: stdin belongs to git and has already been consumed.
	s.program = tea.NewProgram(newModel(s.label, time.Now),
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(s.out),
	)
	s.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.done)
}

// Stop ends the animation and clears the line. It waits briefly for the
// program to exit so the next report line is not overdrawn.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program, s.done = nil, nil
	s.mu.Unlock()
	if p == nil {
		return
	}

	p.Quit()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
	}
	fmt.Fprint(s.out, "\r\033[K")
}
