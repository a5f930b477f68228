// Package progress draws a progress bar on stderr while reports load.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Tracker wraps a progress bar for file processing.
type Tracker struct {
	bar   *progressbar.ProgressBar
	label string
	out   io.Writer
}

// Interactive reports whether stderr is a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// NewTracker creates a progress bar with the given label and total count.
// A hidden bar renders to io.Discard but still counts.
func NewTracker(label string, total int, visible bool) *Tracker {
	return newTracker(os.Stderr, label, total, visible)
}

func newTracker(out io.Writer, label string, total int, visible bool) *Tracker {
	barOut := out
	if !visible {
		barOut = io.Discard
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(barOut),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar, label: label, out: out}
}

// Callback adapts the tracker to analyzer.ProgressFunc. The total is
// updated as it grows so callers need not know it up front.
func (t *Tracker) Callback() func(current, total int, path string) {
	return func(current, total int, _ string) {
		if int64(total) != t.bar.GetMax64() {
			t.bar.ChangeMax(total)
		}
		_ = t.bar.Set(current)
	}
}

// FinishSuccess clears the bar completely (no output).
func (t *Tracker) FinishSuccess() {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}

// FinishError clears the bar and prints an error message.
func (t *Tracker) FinishError(err error) {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
	fmt.Fprintf(t.out, "  %s error: %v\n", t.label, err)
}
