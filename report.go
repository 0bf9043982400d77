package memhog

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Reporter receives the progress of a run, one Event per phase.
type Reporter interface {
	Report(evt Event) error
}

// Event is a single progress notification of a run.
type Event struct {
	Type  EventType
	RunID string
	Time  time.Time

	// Size is the requested block size in bytes
	Size int64
	Hold time.Duration
	// Elapsed is the time spent holding, set on completed and interrupted events
	Elapsed time.Duration
	// Err is set on alloc_failed and interrupted events
	Err error
}

// ConsoleReporter writes progress to out and failures to errOut,
// one human readable line per event.
type ConsoleReporter struct {
	out    io.Writer
	errOut io.Writer
}

func NewConsoleReporter(out, errOut io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out, errOut: errOut}
}

func (r *ConsoleReporter) Report(evt Event) error {
	w := r.out
	if evt.Type.IsFailure() {
		w = r.errOut
	}
	_, err := fmt.Fprintln(w, message(evt))
	return err
}

func message(evt Event) string {
	size := humanize.IBytes(uint64(evt.Size))

	switch evt.Type {
	case EventAttempt:
		return fmt.Sprintf("Attempting to allocate %s (%d bytes) of memory...", size, evt.Size)
	case EventAllocated:
		return fmt.Sprintf("Successfully allocated %s, holding for %v", size, evt.Hold)
	case EventCompleted:
		return fmt.Sprintf("Held %s for %v, memory allocation test completed", size, evt.Elapsed.Round(time.Millisecond))
	case EventAllocFailed:
		return fmt.Sprintf("Out of memory: %v", evt.Err)
	case EventInterrupted:
		return fmt.Sprintf("Hold interrupted: %v", evt.Err)
	case EventReleased:
		return "Memory released"
	}
	return evt.Type.String()
}
