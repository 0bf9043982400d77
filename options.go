package memhog

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type options struct {
	SizeMB int           // block size in MB, default 512
	Hold   time.Duration // how long the block is kept, default 3s

	Logger   Logger
	Reporter Reporter

	// interrupt ends the hold early when a value arrives, usually fed by signal.Notify
	Interrupt <-chan os.Signal

	// Preflight compares the request with the measured headroom before allocating,
	// so an out-of-memory condition is reported instead of killing the runtime.
	Preflight bool
	// UseCGroup adds the cgroup memory limit of the process to the headroom.
	UseCGroup bool
	// MemoryLimit is an explicit ceiling in bytes on the process RSS, 0 means none.
	MemoryLimit uint64
}

type Option interface {
	apply(*options) error
}

type optionFunc func(*options) error

func (f optionFunc) apply(opts *options) error {
	return f(opts)
}

func newOptions() *options {
	return &options{
		SizeMB:    defaultSizeMB,
		Hold:      defaultHold,
		Logger:    NewStdLogger(),
		Reporter:  NewConsoleReporter(os.Stdout, os.Stderr),
		Preflight: true,
		UseCGroup: true,
	}
}

// WithSizeMB sets the block size in megabytes.
func WithSizeMB(sizeMB int) Option {
	return optionFunc(func(opts *options) (err error) {
		if sizeMB <= 0 {
			return fmt.Errorf("size must be positive, got %d MB", sizeMB)
		}
		opts.SizeMB = sizeMB
		return
	})
}

// WithHold sets the hold duration.
// hold must be valid time duration string,
// eg. "ns", "us" (or "µs"), "ms", "s", "m", "h".
func WithHold(hold string) Option {
	return optionFunc(func(opts *options) (err error) {
		d, err := time.ParseDuration(hold)
		if err != nil {
			return err
		}
		if d < 0 {
			return fmt.Errorf("hold must not be negative, got %v", d)
		}
		opts.Hold = d
		return
	})
}

// WithLogger sets the diagnostic logger, nil discards diagnostics.
func WithLogger(logger Logger) Option {
	return optionFunc(func(opts *options) (err error) {
		if logger == nil {
			logger = nopLogger{}
		}
		opts.Logger = logger
		return
	})
}

// WithReporter replaces the console reporter.
func WithReporter(r Reporter) Option {
	return optionFunc(func(opts *options) (err error) {
		if r == nil {
			return errors.New("reporter must not be nil")
		}
		opts.Reporter = r
		return
	})
}

// WithInterrupt makes the hold end when a signal arrives on ch.
func WithInterrupt(ch <-chan os.Signal) Option {
	return optionFunc(func(opts *options) (err error) {
		opts.Interrupt = ch
		return
	})
}

// WithPreflight toggles the headroom check before allocating.
func WithPreflight(enable bool) Option {
	return optionFunc(func(opts *options) (err error) {
		opts.Preflight = enable
		return
	})
}

// WithCGroup toggles cgroup awareness of the headroom check.
func WithCGroup(useCGroup bool) Option {
	return optionFunc(func(opts *options) (err error) {
		opts.UseCGroup = useCGroup
		return
	})
}

// WithMemoryLimit caps the headroom at limit bytes of process RSS.
func WithMemoryLimit(limit uint64) Option {
	return optionFunc(func(opts *options) (err error) {
		opts.MemoryLimit = limit
		return
	})
}
