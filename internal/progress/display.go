package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay orchestrates the display of progress indicators
type ProgressDisplay struct {
	mu           sync.Mutex
	capabilities TerminalCapabilities
	currentStage *StageInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	out          io.Writer
}

// NewProgressDisplay creates a progress display writing to stdout
func NewProgressDisplay(caps TerminalCapabilities) *ProgressDisplay {
	return NewProgressDisplayWithWriter(caps, os.Stdout)
}

// NewProgressDisplayWithWriter creates a progress display writing status lines to out.
// The spinner always animates on stderr.
func NewProgressDisplayWithWriter(caps TerminalCapabilities, out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// StartStage begins displaying progress for a stage
func (p *ProgressDisplay) StartStage(stage StageInfo) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinnerLocked()
	stage.Status = StageInProgress
	p.currentStage = &stage

	msg := runningLine(stage)

	if p.capabilities.IsTTY {
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(os.Stderr),
		)
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		fmt.Fprintln(p.out, msg)
	}

	return nil
}

// CompleteStage stops the spinner and displays completion status
func (p *ProgressDisplay) CompleteStage(stage StageInfo) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinnerLocked()

	fmt.Fprintf(p.out, "%s %s complete\n", successMark(p.symbols, p.capabilities), stageHeading(stage))

	p.currentStage = nil
	return nil
}

// FailStage stops the spinner and displays failure status
func (p *ProgressDisplay) FailStage(stage StageInfo, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinnerLocked()

	fmt.Fprintf(p.out, "%s %s failed: %v\n", failureMark(p.symbols, p.capabilities), stageHeading(stage), err)

	p.currentStage = nil
	return nil
}

// CurrentStage returns the stage being displayed, if any
func (p *ProgressDisplay) CurrentStage() (StageInfo, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currentStage == nil {
		return StageInfo{}, false
	}
	return *p.currentStage, true
}

// StopSpinner stops the spinner without showing completion/failure
func (p *ProgressDisplay) StopSpinner() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinnerLocked()
}

func (p *ProgressDisplay) stopSpinnerLocked() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
