package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/farm-deploy/internal/usecase"
)

// SpinnerSink reports bootstrap progress. Interactive mode animates a
// spinner; otherwise each event is printed on its own line.
type SpinnerSink struct {
	out          io.Writer
	interactive  bool
	spinner      *spinner.Spinner
	currentStage string
	stageStart   time.Time
}

// NewSpinnerSink creates a new progress sink writing to out
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{
		out:         out,
		interactive: interactive,
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != s.currentStage {
		s.completeStage()
		s.currentStage = event.Stage
		s.stageStart = time.Now()
	}

	message := event.Message
	if event.Total > 0 {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
	}

	if !s.interactive {
		if message != "" {
			fmt.Fprintln(s.out, message)
		}
		return
	}

	if event.Spinner {
		if s.spinner == nil {
			s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.spinner.Writer = s.out
			s.spinner.HideCursor = false
			_ = s.spinner.Color("cyan", "bold")
		}
		s.spinner.Suffix = " " + message
		if !s.spinner.Active() {
			s.spinner.Start()
		}
	} else {
		s.stopSpinner()
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	s.println(color.New(color.FgCyan), message)
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	s.println(color.New(color.FgRed), message)
}

// Done stops the spinner and closes the last stage
func (s *SpinnerSink) Done() {
	s.completeStage()
	s.stopSpinner()
}

func (s *SpinnerSink) println(c *color.Color, message string) {
	wasActive := s.stopSpinner()
	c.Fprintln(s.out, message)
	if wasActive {
		s.spinner.Start()
	}
}

func (s *SpinnerSink) stopSpinner() bool {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
		return true
	}
	return false
}

// completeStage prints the elapsed time of the stage that just ended
func (s *SpinnerSink) completeStage() {
	if s.currentStage == "" {
		return
	}
	elapsed := time.Since(s.stageStart).Round(time.Millisecond)
	stage := s.currentStage
	s.currentStage = ""
	s.println(color.New(color.FgGreen), fmt.Sprintf("✓ %s (%s)", stage, elapsed))
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
