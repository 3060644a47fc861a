// Package progress reports how far a generation run has come.
package progress

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Reporter is told about the start of the run and of every copy
type Reporter interface {
	Begin(totalBytes int64, copies int)
	Copy(index, copies int)
	Close() error
}

// Lines prints one plain line per copy
type Lines struct {
	w io.Writer
}

// NewLines returns a Reporter printing to w
func NewLines(w io.Writer) *Lines {
	return &Lines{w: w}
}

func (l *Lines) Begin(totalBytes int64, copies int) {
	fmt.Fprintf(l.w, "Size of input data: %d\n", totalBytes)
	fmt.Fprintf(l.w, "Creating %d modified copies of this:\n", copies)
}

func (l *Lines) Copy(index, copies int) {
	fmt.Fprintf(l.w, "Writing %d of %d...\n", index+1, copies)
}

func (l *Lines) Close() error { return nil }

// Bar renders a progress bar over copies
type Bar struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewBar returns a Reporter drawing a progress bar on w
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

func (b *Bar) Begin(totalBytes int64, copies int) {
	fmt.Fprintf(b.w, "Size of input data: %d\n", totalBytes)
	fmt.Fprintf(b.w, "Creating %d modified copies of this:\n", copies)

	b.bar = progressbar.NewOptions(
		copies,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription("writing copies"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("copies"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

// Copy advances the bar once the previous copy is done
func (b *Bar) Copy(index, copies int) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Set(index)
	b.bar.Describe(fmt.Sprintf("writing %d of %d", index+1, copies))
}

func (b *Bar) Close() error {
	if b.bar == nil {
		return nil
	}
	return b.bar.Finish()
}
