// Package cmd provides the command-line interface of memhog.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"mosn.io/memhog"
)

// Size and hold are fixed at build time, eg.
//   go build -ldflags "-X mosn.io/memhog/cmd/memhog/cmd.sizeMB=1024 -X mosn.io/memhog/cmd/memhog/cmd.hold=10s"
var (
	sizeMB = "512"
	hold   = "3s"
)

// envFiles are loaded before the environment is read, when present.
var envFiles = []string{".env"}

const (
	exitOK           = 0
	exitAllocFailure = 1
	exitConfig       = 2
	// 128 + SIGINT, used when the interrupt carried no signal number
	exitInterrupted = 130
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memhog",
		Short: "memhog allocates a fixed block of memory, holds it, then releases it.",
		Long: `memhog is a memory-pressure villain for load tests. It allocates a block of ` +
			sizeMB + ` MB, keeps it resident for ` + hold + `, then releases it. ` +
			`Progress goes to stdout, failures to stderr. ` +
			`The exit code is 0 on success, 1 when the memory could not be allocated, ` +
			`128+signal when the hold was interrupted and 2 on bad configuration.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
}

// Execute runs the root command and exits the process with its exit code,
// after the registered exit hooks ran.
func Execute() {
	atexit.Register(memhog.CloseLogs)

	err := newRootCmd().ExecuteContext(context.Background())
	code := exitCode(err)
	if code == exitConfig {
		fmt.Fprintln(os.Stderr, "memhog:", err)
	}
	atexit.Exit(code)
}

func run(cmd *cobra.Command, _ []string) error {
	conf, err := buildConfig()
	if err != nil {
		return err
	}
	opts, err := conf.Options()
	if err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	opts = append(opts,
		memhog.WithInterrupt(interrupt),
		memhog.WithReporter(memhog.NewConsoleReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())),
	)
	h, err := memhog.New(opts...)
	if err != nil {
		return err
	}
	return h.Run(cmd.Context())
}

func buildConfig() (memhog.Config, error) {
	conf := memhog.DefaultConfig()

	size, err := strconv.Atoi(sizeMB)
	if err != nil {
		return conf, fmt.Errorf("build-time size %q: %w", sizeMB, err)
	}
	conf.SizeMB = size
	conf.Hold = hold

	if err := conf.LoadEnv(envFiles...); err != nil {
		return conf, err
	}
	return conf, nil
}

func exitCode(err error) int {
	var interrupted *memhog.InterruptError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &interrupted):
		if sig, ok := interrupted.Signal.(syscall.Signal); ok {
			return 128 + int(sig)
		}
		return exitInterrupted
	case errors.Is(err, memhog.ErrAllocationFailure):
		return exitAllocFailure
	default:
		return exitConfig
	}
}
