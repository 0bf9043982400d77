package memhog

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleReporterStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewConsoleReporter(&out, &errOut)

	size := int64(512 * bytesPerMB)
	events := []Event{
		{Type: EventAttempt, Size: size, Hold: 3 * time.Second},
		{Type: EventAllocated, Size: size, Hold: 3 * time.Second},
		{Type: EventInterrupted, Size: size, Err: &InterruptError{Held: time.Second}},
		{Type: EventAllocFailed, Size: size, Err: &AllocError{Size: size, Available: 1024}},
		{Type: EventCompleted, Size: size, Elapsed: 3 * time.Second},
		{Type: EventReleased, Size: size},
	}
	for _, evt := range events {
		require.NoError(t, r.Report(evt))
	}

	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, outLines, 4)
	assert.Equal(t, "Attempting to allocate 512 MiB (536870912 bytes) of memory...", outLines[0])
	assert.Equal(t, "Successfully allocated 512 MiB, holding for 3s", outLines[1])
	assert.Equal(t, "Held 512 MiB for 3s, memory allocation test completed", outLines[2])
	assert.Equal(t, "Memory released", outLines[3])

	errLines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	require.Len(t, errLines, 2)
	assert.Equal(t, "Hold interrupted: interrupted after 1s", errLines[0])
	assert.Equal(t, "Out of memory: cannot allocate 512 MiB (536870912 bytes), 1.0 KiB available", errLines[1])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestConsoleReporterWriteError(t *testing.T) {
	r := NewConsoleReporter(failingWriter{}, failingWriter{})
	assert.Error(t, r.Report(Event{Type: EventReleased}))
}

func TestEventType(t *testing.T) {
	assert.Equal(t, "alloc_failed", EventAllocFailed.String())
	assert.Equal(t, "unknown", EventType(42).String())
	assert.True(t, EventInterrupted.IsFailure())
	assert.False(t, EventReleased.IsFailure())
}
