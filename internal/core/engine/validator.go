// Package engine derives throughput samples from successive raw counter
// readings: validate the pair, compute the rate, keep a bounded rolling
// window. It holds no locks and does no I/O; the owner drives it one tick
// at a time with readings in increasing timestamp order.
package engine

import "github.com/wilsonritt/snmp-monitor/internal/domain"

// Polling cadence is nominally one second. Deltas outside this band mean
// a missed tick or clock anomaly that would corrupt the rate denominator,
// so the pair is dropped instead of distorting the series.
const (
	MinElapsedSeconds = 0.5
	MaxElapsedSeconds = 3.0
)

type Validator struct {
	MinElapsed float64
	MaxElapsed float64
}

func NewValidator() Validator {
	return Validator{
		MinElapsed: MinElapsedSeconds,
		MaxElapsed: MaxElapsedSeconds,
	}
}

// Validate decides whether a previous/current reading pair yields a usable
// rate sample. prev == nil is the session's warm-up poll: always rejected,
// the caller stores curr as the new baseline. The same baseline-replacement
// rule applies to every other rejection; there is no retry against an
// older baseline.
func (v Validator) Validate(prev *domain.RawReading, curr domain.RawReading) domain.ValidationOutcome {
	if prev == nil {
		return domain.ValidationOutcome{Reason: domain.RejectFirstSample}
	}

	elapsed := curr.At.Sub(prev.At).Seconds()
	if elapsed < v.MinElapsed || elapsed > v.MaxElapsed {
		return domain.ValidationOutcome{
			Reason:         domain.RejectElapsedOutOfRange,
			ElapsedSeconds: elapsed,
		}
	}

	// A counter going backwards signals a reset, reboot or wrap. All are
	// handled the same way: discard and resynchronize on the next pair.
	if curr.OctetsIn < prev.OctetsIn || curr.OctetsOut < prev.OctetsOut {
		return domain.ValidationOutcome{
			Reason:         domain.RejectNegativeDelta,
			ElapsedSeconds: elapsed,
		}
	}

	deltaIn := curr.OctetsIn - prev.OctetsIn
	deltaOut := curr.OctetsOut - prev.OctetsOut

	if deltaIn == 0 && deltaOut == 0 {
		return domain.ValidationOutcome{
			Reason:         domain.RejectZeroDelta,
			ElapsedSeconds: elapsed,
		}
	}

	return domain.ValidationOutcome{
		Accepted:       true,
		ElapsedSeconds: elapsed,
		DeltaIn:        deltaIn,
		DeltaOut:       deltaOut,
	}
}
