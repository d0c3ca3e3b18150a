package progress

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dosctl/internal/library"
)

type recorder struct {
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.msgs = append(r.msgs, msg)
}

func TestByteProgressWriterThrottles(t *testing.T) {
	var r recorder
	w := NewByteProgressWriter(&r, 1000)

	for i := 0; i < 100; i++ {
		_, err := w.Write(make([]byte, 5))
		require.NoError(t, err)
	}
	_, _ = w.Write(make([]byte, 500))

	require.NotEmpty(t, r.msgs)
	assert.LessOrEqual(t, len(r.msgs), 51)

	last, ok := r.msgs[len(r.msgs)-1].(SubProgressMsg)
	require.True(t, ok)
	assert.Equal(t, 100.0, last.Percent)
	assert.Equal(t, "1.0 kB / 1.0 kB", last.Detail)
}

func TestByteProgressWriterWithoutTotal(t *testing.T) {
	var r recorder
	w := NewByteProgressWriter(&r, 0)

	_, _ = w.Write([]byte("data"))
	assert.Empty(t, r.msgs)
}

func TestSetupReporter(t *testing.T) {
	var r recorder
	report := SetupReporter(&r)

	report(library.SetupProgress{Stage: library.StageSkeleton, Total: 200})
	report(library.SetupProgress{Stage: library.StageCopy, File: "GAME.EXE", FileIndex: 1, FileCount: 2, Written: 100, Total: 200})
	report(library.SetupProgress{Stage: library.StageCopy, File: "DATA.DAT", FileIndex: 2, FileCount: 2, Written: 200, Total: 200})
	report(library.SetupProgress{Stage: library.StageConfig, Written: 200, Total: 200})

	require.Len(t, r.msgs, 2)
	first := r.msgs[0].(SubProgressMsg)
	assert.Equal(t, 50.0, first.Percent)
	assert.Equal(t, "1/2 GAME.EXE  100 B / 200 B", first.Detail)
}

func TestScanReporter(t *testing.T) {
	var r recorder
	sink := ScanReporter(&r)

	sink(library.ScanEvent{Kind: library.EventProgress, Current: 1, Total: 4, Message: "Loaded Doom"})
	sink(library.ScanEvent{Kind: library.EventSkipped, Current: 2, Total: 4, Message: "Skipped tmp"})
	sink(library.ScanEvent{Kind: library.EventComplete, Current: 4, Total: 4})

	require.Len(t, r.msgs, 3)
	assert.Equal(t, SubProgressMsg{Percent: 25, Detail: "1/4 Loaded Doom"}, r.msgs[0])
	assert.Equal(t, SubProgressMsg{Percent: 50, Detail: "2/4 Skipped tmp"}, r.msgs[1])
	assert.Equal(t, CompleteStepMsg{}, r.msgs[2])
}
