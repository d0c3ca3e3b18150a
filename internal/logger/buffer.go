package logger

import (
	"bytes"
	"strings"
	"sync"
)

// Buffer is an append-only in-memory log sink. It collects the warnings
// raised while scanning so they can be shown on demand.
type Buffer struct {
	mu    sync.Mutex
	lines []string
	part  bytes.Buffer
}

// NewBuffer creates an empty diagnostic buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Write implements io.Writer. Partial lines are held until their newline arrives.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.part.Write(p)
	for {
		data := b.part.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(data[:i]), "\r")
		if line != "" {
			b.lines = append(b.lines, line)
		}
		b.part.Next(i + 1)
	}

	return len(p), nil
}

// Lines returns a copy of every complete line written so far
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of complete lines
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// String joins all lines with newlines
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}
