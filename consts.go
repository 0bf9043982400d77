package memhog

import (
	"time"

	mlog "mosn.io/pkg/log"
)

const (
	defaultSizeMB = 512             // 512 MB
	defaultHold   = 3 * time.Second // hold the block for 3s

	bytesPerMB = 1024 * 1024

	defaultLogLevel = mlog.WARN
)

// EventType is the phase of a run an Event reports.
type EventType int

const (
	// EventAttempt is emitted before the block is allocated.
	EventAttempt EventType = iota
	// EventAllocated is emitted once the block is allocated and resident.
	EventAllocated
	// EventCompleted is emitted when the hold ran its full duration.
	EventCompleted
	// EventAllocFailed is emitted when the block could not be allocated.
	EventAllocFailed
	// EventInterrupted is emitted when the hold was cut short.
	EventInterrupted
	// EventReleased is emitted exactly once per run, after the block is dropped.
	EventReleased
)

var type2name = map[EventType]string{
	EventAttempt:     "attempt",
	EventAllocated:   "allocated",
	EventCompleted:   "completed",
	EventAllocFailed: "alloc_failed",
	EventInterrupted: "interrupted",
	EventReleased:    "released",
}

func (t EventType) String() string {
	if name, ok := type2name[t]; ok {
		return name
	}
	return "unknown"
}

// IsFailure reports whether the event belongs on the error stream.
func (t EventType) IsFailure() bool {
	return t == EventAllocFailed || t == EventInterrupted
}
