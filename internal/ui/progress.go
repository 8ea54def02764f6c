package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Frames are the spinner ticks. The first frame doubles as the "started"
// marker and DoneFrame as the "finished" marker when output is not a
// terminal.
var Frames = []string{"▹▹▹▹▹", "▸▹▹▹▹", "▹▸▹▹▹", "▹▹▸▹▹", "▹▹▹▸▹", "▹▹▹▹▸"}

// DoneFrame marks a finished step.
const DoneFrame = "▪▪▪▪▪"

const tickInterval = 120 * time.Millisecond

// Progress reports a long-running step. On a terminal it animates a spinner;
// otherwise it prints one line when the step starts and one when it ends.
type Progress struct {
	out     io.Writer
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// Start begins reporting message on out. The spinner stops when ctx is
// cancelled or Finish is called.
func Start(ctx context.Context, out io.Writer, message string) *Progress {
	p := &Progress{out: out}
	if !IsTerminal(out) {
		_, _ = fmt.Fprintf(out, "%s %s\n", Frames[0], message)
		return p
	}

	p.program = tea.NewProgram(newModel(message, DefaultPalette()),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()
	return p
}

// Finish stops the spinner and leaves message as the final line. Only the
// first call has any effect.
func (p *Progress) Finish(message string) {
	p.stop(message, true)
}

// Stop removes the spinner without printing anything, for steps that failed
// and are reported elsewhere.
func (p *Progress) Stop() {
	p.stop("", false)
}

func (p *Progress) stop(message string, show bool) {
	p.once.Do(func() {
		if p.program == nil {
			if show {
				_, _ = fmt.Fprintf(p.out, "%s %s\n", DoneFrame, message)
			}
			return
		}
		p.program.Send(finishMsg(message))
		<-p.done
	})
}

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type finishMsg string

type model struct {
	spinner spinner.Model
	palette Palette
	message string
	final   string
	done    bool
}

func newModel(message string, palette Palette) model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Spinner{Frames: Frames, FPS: tickInterval}),
		spinner.WithStyle(palette.Styles().Spinner),
	)
	return model{spinner: s, palette: palette, message: message}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case finishMsg:
		m.final = string(msg)
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	styles := m.palette.Styles()
	if m.done {
		if m.final == "" {
			return ""
		}
		return styles.Spinner.Render(DoneFrame) + " " + styles.Text.Render(m.final) + "\n"
	}
	return m.spinner.View() + " " + styles.Muted.Render(m.message)
}
