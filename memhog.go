package memhog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/xid"
)

// Hog is a memory-pressure probe: it allocates one memory block, holds it
// for a fixed duration, then releases it. A Hog runs once.
type Hog struct {
	opts  *options
	runID string
	ran   int32

	// block is the owning reference, reachable for the whole hold
	block *Block

	alloc   func(size int64) (*Block, error)
	sources map[string]headroom
}

// New creates a Hog. Without options it holds 512 MB for 3s and reports to
// stdout and stderr.
func New(opts ...Option) (*Hog, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt.apply(o); err != nil {
			return nil, err
		}
	}

	return &Hog{
		opts:    o,
		runID:   xid.New().String(),
		alloc:   allocate,
		sources: o.headrooms(),
	}, nil
}

// RunID identifies the run in events and logs.
func (h *Hog) RunID() string {
	return h.runID
}

// Run allocates the block, holds it and releases it. The block is released
// and EventReleased reported exactly once whatever the outcome.
// The returned error matches ErrAllocationFailure or ErrHoldInterrupted.
func (h *Hog) Run(ctx context.Context) (err error) {
	if !atomic.CompareAndSwapInt32(&h.ran, 0, 1) {
		return ErrAlreadyRun
	}

	size, sizeErr := sizeBytes(h.opts.SizeMB)
	h.opts.Logger.Infof("[memhog] run %s: size %d MB, hold %v", h.runID, h.opts.SizeMB, h.opts.Hold)
	h.report(Event{Type: EventAttempt, Size: size})
	defer h.release(size)

	if sizeErr != nil {
		err = &AllocError{Size: size, Available: -1, Cause: sizeErr}
		h.report(Event{Type: EventAllocFailed, Size: size, Err: err})
		return err
	}

	if err = h.allocate(ctx, size); err != nil {
		h.opts.Logger.Infof("[memhog] run %s: %v", h.runID, err)
		h.report(Event{Type: EventAllocFailed, Size: size, Err: err})
		return err
	}
	h.report(Event{Type: EventAllocated, Size: size})
	h.logRSS(ctx)

	held, err := h.hold(ctx)
	if err != nil {
		h.opts.Logger.Infof("[memhog] run %s: %v", h.runID, err)
		h.report(Event{Type: EventInterrupted, Size: size, Elapsed: held, Err: err})
		return err
	}
	h.report(Event{Type: EventCompleted, Size: size, Elapsed: held})
	return nil
}

func (h *Hog) allocate(ctx context.Context, size int64) error {
	if h.opts.Preflight {
		avail, ok := measure(ctx, h.sources, h.opts.Logger)
		if ok && uint64(size) > avail {
			return &AllocError{Size: size, Available: clampInt64(avail)}
		}
	}

	b, err := h.alloc(size)
	if err != nil {
		if !errors.Is(err, ErrAllocationFailure) {
			err = &AllocError{Size: size, Available: -1, Cause: err}
		}
		return err
	}
	h.block = b
	return nil
}

// hold blocks until the hold duration elapsed, an interrupt arrived or ctx
// is done. The hold is never resumed after an interruption.
func (h *Hog) hold(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	timer := time.NewTimer(h.opts.Hold)
	defer timer.Stop()

	select {
	case <-timer.C:
		return time.Since(start), nil
	case sig := <-h.opts.Interrupt:
		held := time.Since(start)
		return held, &InterruptError{Signal: sig, Held: held}
	case <-ctx.Done():
		held := time.Since(start)
		return held, &InterruptError{Held: held, Cause: ctx.Err()}
	}
}

func (h *Hog) release(size int64) {
	if h.block != nil {
		h.block.Release()
		h.block = nil
	}
	h.opts.Logger.Infof("[memhog] run %s: block released", h.runID)
	h.report(Event{Type: EventReleased, Size: size})
}

func (h *Hog) report(evt Event) {
	evt.RunID = h.runID
	evt.Time = time.Now()
	evt.Hold = h.opts.Hold
	if err := h.opts.Reporter.Report(evt); err != nil {
		h.opts.Logger.Warnf("[memhog] run %s: report %s failed: %v", h.runID, evt.Type, err)
	}
}

func (h *Hog) logRSS(ctx context.Context) {
	rss, err := processRSS(ctx)
	if err != nil {
		h.opts.Logger.Debugf("[memhog] run %s: read rss: %v", h.runID, err)
		return
	}
	h.opts.Logger.Infof("[memhog] run %s: rss after allocation %s", h.runID, humanize.IBytes(rss))
}

func sizeBytes(sizeMB int) (int64, error) {
	if sizeMB <= 0 {
		return 0, fmt.Errorf("size must be positive, got %d MB", sizeMB)
	}
	if int64(sizeMB) > math.MaxInt64/bytesPerMB {
		return math.MaxInt64, fmt.Errorf("%d MB overflows a byte count", sizeMB)
	}
	return int64(sizeMB) * bytesPerMB, nil
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
