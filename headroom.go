package memhog

import (
	"context"
	"errors"
	"os"

	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"

	"mosn.io/memhog/internal/cg/cgroups"
)

// headroom is a source of "how many more bytes may this process take".
// ok is false when the source has no opinion.
type headroom func(ctx context.Context) (avail uint64, ok bool, err error)

// hostHeadroom is the memory the host can hand out without swapping.
func hostHeadroom(ctx context.Context) (uint64, bool, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, false, err
	}
	return vm.Available, true, nil
}

// cgroupHeadroom is the room left below the memory limit of the process cgroup.
func cgroupHeadroom(_ context.Context) (uint64, bool, error) {
	cg, err := cgroups.LoadForCurrentProcess()
	if err != nil {
		if errors.Is(err, cgroups.ErrCGroupFSNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	limit, defined, err := cg.MemLimit()
	if err != nil || !defined {
		return 0, false, err
	}
	usage, err := cg.MemUsage()
	if err != nil {
		return 0, false, err
	}
	return remaining(uint64(limit), uint64(usage)), true, nil
}

// limitHeadroom is the room left below an explicit RSS ceiling.
func limitHeadroom(limit uint64) headroom {
	return func(ctx context.Context) (uint64, bool, error) {
		rss, err := processRSS(ctx)
		if err != nil {
			return 0, false, err
		}
		return remaining(limit, rss), true, nil
	}
}

func processRSS(ctx context.Context) (uint64, error) {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	info, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

func remaining(limit, used uint64) uint64 {
	if used >= limit {
		return 0
	}
	return limit - used
}

// headrooms builds the sources the preflight consults.
func (opts *options) headrooms() map[string]headroom {
	sources := map[string]headroom{"host": hostHeadroom}
	if opts.UseCGroup {
		sources["cgroup"] = cgroupHeadroom
	}
	if opts.MemoryLimit > 0 {
		sources["limit"] = limitHeadroom(opts.MemoryLimit)
	}
	return sources
}

// measure returns the smallest headroom among sources. Failing sources are
// logged and skipped; ok is false when no source had an opinion.
func measure(ctx context.Context, sources map[string]headroom, logger Logger) (avail uint64, ok bool) {
	for name, src := range sources {
		v, has, err := src(ctx)
		if err != nil {
			logger.Warnf("[memhog] %s headroom unavailable: %v", name, err)
			continue
		}
		if !has {
			logger.Debugf("[memhog] %s headroom: no limit", name)
			continue
		}
		logger.Debugf("[memhog] %s headroom: %d bytes", name, v)
		if !ok || v < avail {
			avail, ok = v, true
		}
	}
	return avail, ok
}
