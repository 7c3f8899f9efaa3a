package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/gyrostable/clpkit/internal/usecase"
)

// SpinnerSink reports progress with a spinner on interactive terminals and
// plain lines otherwise
type SpinnerSink struct {
	out         io.Writer
	interactive bool

	mu      sync.Mutex
	spinner *spinner.Spinner
	start   time.Time
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{
		out:         out,
		interactive: interactive,
		start:       time.Now(),
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := event.Message
	if event.Total > 1 {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, message)
	}

	if !s.interactive {
		if message != "" {
			fmt.Fprintln(s.out, message)
		}
		return
	}

	if !event.Spinner {
		s.stopLocked()
		if message != "" {
			fmt.Fprintln(s.out, message)
		}
		return
	}

	if s.spinner == nil {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.spinner.Writer = s.out
		_ = s.spinner.Color("cyan", "bold")
	}
	s.spinner.Suffix = " " + message
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Info stops the spinner and prints a success line
func (s *SpinnerSink) Info(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	elapsed := time.Since(s.start).Round(time.Millisecond)
	fmt.Fprintf(s.out, "%s %s %s\n", color.GreenString("✓"), message, color.New(color.Faint).Sprintf("(%s)", elapsed))
}

// Error stops the spinner and prints a failure line
func (s *SpinnerSink) Error(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	fmt.Fprintf(s.out, "%s %s\n", color.RedString("✗"), message)
}

// Stop halts the spinner if it is running
func (s *SpinnerSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *SpinnerSink) stopLocked() {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
