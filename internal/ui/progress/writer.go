package progress

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/bnema/dosctl/internal/library"
)

// Sender delivers messages to a running program; *tea.Program satisfies it
type Sender interface {
	Send(msg tea.Msg)
}

// ByteProgressWriter tracks bytes copied and sends progress messages
type ByteProgressWriter struct {
	program    Sender
	total      int64
	written    int64
	lastUpdate float64
}

// NewByteProgressWriter creates a writer that tracks byte progress
func NewByteProgressWriter(p Sender, total int64) *ByteProgressWriter {
	return &ByteProgressWriter{
		program:    p,
		total:      total,
		lastUpdate: -1,
	}
}

// Write implements io.Writer, tracking bytes and sending progress
func (w *ByteProgressWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	w.Set(w.written+int64(n), "")
	return n, nil
}

// Set records the absolute number of bytes written so far
func (w *ByteProgressWriter) Set(written int64, label string) {
	w.written = written
	if w.total <= 0 {
		return
	}

	percent := float64(w.written) / float64(w.total) * 100

	// Only send updates every 1% to avoid flooding
	if percent-w.lastUpdate >= 1 || percent >= 100 {
		w.lastUpdate = percent
		detail := humanize.Bytes(uint64(w.written)) + " / " + humanize.Bytes(uint64(w.total))
		if label != "" {
			detail = label + "  " + detail
		}
		w.program.Send(SubProgressMsg{
			Percent: percent,
			Detail:  detail,
		})
	}
}

// SetupReporter turns setup copy progress into SubProgressMsg updates
func SetupReporter(p Sender) library.SetupProgressFunc {
	var w *ByteProgressWriter
	return func(sp library.SetupProgress) {
		if sp.Stage != library.StageCopy {
			return
		}
		if w == nil {
			w = NewByteProgressWriter(p, sp.Total)
		}
		w.Set(sp.Written, fmt.Sprintf("%d/%d %s", sp.FileIndex, sp.FileCount, sp.File))
	}
}

// ScanReporter turns library scan events into progress messages. The
// completion event completes the current step.
func ScanReporter(p Sender) library.ScanSink {
	return func(e library.ScanEvent) {
		if e.Kind == library.EventComplete {
			p.Send(CompleteStepMsg{})
			return
		}

		var percent float64
		if e.Total > 0 {
			percent = float64(e.Current) / float64(e.Total) * 100
		}
		p.Send(SubProgressMsg{
			Percent: percent,
			Detail:  FormatCount(e.Current, e.Total) + " " + e.Message,
		})
	}
}
