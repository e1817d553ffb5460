package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/models"
	"github.com/Ebzefr/WebSecura/render"

	"github.com/fatih/color"
)

// spinner is the terminal's stand-in for a disabled submit button: it runs
// while a request is in flight.
type spinner struct {
	out      io.Writer
	frames   []string
	interval time.Duration
	message  string

	mu      sync.Mutex
	running bool
	done    chan struct{}
	stopped chan struct{}
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:      out,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		message:  message,
	}
}

func (s *spinner) Busy() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	done, stopped := s.done, s.stopped
	s.mu.Unlock()

	go func() {
		defer close(stopped)
		cyan := color.New(color.FgCyan)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i = (i + 1) % len(s.frames) {
			fmt.Fprintf(s.out, "\r%s %s", cyan.Sprint(s.frames[i]), s.message)
			select {
			case <-done:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

func (s *spinner) Idle() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	stopped := s.stopped
	s.mu.Unlock()
	<-stopped
}

func (s *spinner) ClearInput() {}

// terminalPresenter prints reports and errors for the CLI.
type terminalPresenter struct {
	out    io.Writer
	errOut io.Writer
}

func newTerminalPresenter() *terminalPresenter {
	return &terminalPresenter{out: os.Stdout, errOut: os.Stderr}
}

func (p *terminalPresenter) PresentReport(r *models.ScanReport) {
	render.WriteTerminal(p.out, render.RenderOverlay(r))
}

func (p *terminalPresenter) PresentDetail(r *models.ScanReport) {
	render.WriteTerminal(p.out, render.RenderModal(r))
}

func (p *terminalPresenter) ShowError(msg string) {
	fmt.Fprintln(p.errOut, color.New(color.FgRed).Sprint("Error: ")+msg)
}

// terminalSink prints notices as they appear. Dismissal is a no-op once a
// line is on screen.
type terminalSink struct {
	out io.Writer
}

func (t terminalSink) Show(n core.Notice) {
	c := color.New(color.FgCyan)
	switch n.Kind {
	case core.NoticeSuccess:
		c = color.New(color.FgGreen)
	case core.NoticeError:
		c = color.New(color.FgRed)
	}
	fmt.Fprintln(t.out, c.Sprint("» ")+n.Text)
}

func (t terminalSink) Dismiss(uint64) {}

// promptConfirmer asks on the terminal unless assumeYes is set.
func promptConfirmer(in io.Reader, out io.Writer, assumeYes bool) core.Confirmer {
	return core.ConfirmFunc(func(prompt string) bool {
		if assumeYes {
			return true
		}
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
