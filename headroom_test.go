package memhog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func source(avail uint64, ok bool, err error) headroom {
	return func(context.Context) (uint64, bool, error) { return avail, ok, err }
}

func TestMeasure(t *testing.T) {
	testTable := []struct {
		name      string
		sources   map[string]headroom
		wantAvail uint64
		wantOK    bool
	}{
		{
			name:    "none",
			sources: map[string]headroom{},
		},
		{
			name: "smallest-wins",
			sources: map[string]headroom{
				"host":   source(8<<30, true, nil),
				"cgroup": source(1<<30, true, nil),
				"limit":  source(2<<30, true, nil),
			},
			wantAvail: 1 << 30,
			wantOK:    true,
		},
		{
			name: "errors-and-unlimited-skipped",
			sources: map[string]headroom{
				"host":   source(4<<30, true, nil),
				"cgroup": source(0, false, nil),
				"limit":  source(1, true, errors.New("no procfs")),
			},
			wantAvail: 4 << 30,
			wantOK:    true,
		},
		{
			name: "only-failures",
			sources: map[string]headroom{
				"host": source(0, false, errors.New("no procfs")),
			},
		},
		{
			name: "exhausted",
			sources: map[string]headroom{
				"cgroup": source(0, true, nil),
			},
			wantAvail: 0,
			wantOK:    true,
		},
	}

	for _, tt := range testTable {
		t.Run(tt.name, func(t *testing.T) {
			avail, ok := measure(context.Background(), tt.sources, nopLogger{})
			assert.Equal(t, tt.wantAvail, avail)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, uint64(30), remaining(100, 70))
	assert.Equal(t, uint64(0), remaining(100, 100))
	assert.Equal(t, uint64(0), remaining(100, 170))
}

func TestLimitHeadroom(t *testing.T) {
	avail, ok, err := limitHeadroom(1<<50)(context.Background())
	if err != nil {
		t.Skipf("process rss unavailable: %v", err)
	}
	assert.True(t, ok)
	assert.Greater(t, avail, uint64(0))
	assert.Less(t, avail, uint64(1<<50))
}
