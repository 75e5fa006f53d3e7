// Package monitor owns monitoring sessions: it drives the sampling engine
// one tick at a time from a per-session polling loop and exposes the
// rolling windows to the serving layer.
package monitor

import (
	"context"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
)

// CounterSource is the narrow contract with the protocol client: list the
// device's interfaces, fetch one interface's cumulative octet counters.
type CounterSource interface {
	ListInterfaces(ctx context.Context) (map[int]string, error)
	FetchCounters(ctx context.Context, index int) (domain.RawReading, error)
	Close() error
}

// TargetSpec identifies one device to poll.
type TargetSpec struct {
	Target    string
	Community string
	Version   string
}

type SourceFactory func(spec TargetSpec) (CounterSource, error)
