package memhog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	// ErrAllocationFailure indicates the memory block could not be obtained.
	ErrAllocationFailure = errors.New("allocation failure")
	// ErrHoldInterrupted indicates the hold ended before its duration elapsed.
	ErrHoldInterrupted = errors.New("hold interrupted")
	// ErrAlreadyRun is returned when Run is called a second time on the same Hog.
	ErrAlreadyRun = errors.New("memhog: hog already run")
)

// AllocError describes an out-of-memory condition.
// Available is -1 when the headroom was not measured.
type AllocError struct {
	Size      int64
	Available int64
	Cause     error
}

func (e *AllocError) Error() string {
	msg := fmt.Sprintf("cannot allocate %s (%d bytes)", humanize.IBytes(uint64(e.Size)), e.Size)
	if e.Available >= 0 {
		msg += fmt.Sprintf(", %s available", humanize.IBytes(uint64(e.Available)))
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *AllocError) Is(target error) bool {
	return target == ErrAllocationFailure
}

func (e *AllocError) Unwrap() error {
	return e.Cause
}

// InterruptError describes a hold that was cut short, either by a signal or
// by cancellation of the run context. Signal is nil in the latter case.
type InterruptError struct {
	Signal os.Signal
	Held   time.Duration
	Cause  error
}

func (e *InterruptError) Error() string {
	held := e.Held.Round(time.Millisecond)
	if e.Signal != nil {
		return fmt.Sprintf("interrupted by signal %v after %v", e.Signal, held)
	}
	if e.Cause != nil {
		return fmt.Sprintf("interrupted after %v: %v", held, e.Cause)
	}
	return fmt.Sprintf("interrupted after %v", held)
}

func (e *InterruptError) Is(target error) bool {
	return target == ErrHoldInterrupted
}

func (e *InterruptError) Unwrap() error {
	return e.Cause
}
