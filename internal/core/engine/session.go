package engine

import "github.com/wilsonritt/snmp-monitor/internal/domain"

// Session owns one rolling window and one previous-reading slot for a
// single monitored interface. Not safe for concurrent use; the driver
// serializes ticks.
type Session struct {
	validator Validator
	window    *Window
	prev      *domain.RawReading
	rejects   map[domain.RejectReason]int
}

func NewSession(windowSize int) *Session {
	return &Session{
		validator: NewValidator(),
		window:    NewWindow(windowSize),
		rejects:   make(map[domain.RejectReason]int),
	}
}

// Feed runs one tick: validate curr against the stored baseline, replace
// the baseline with curr regardless of the outcome, and on acceptance
// build the sample and append it to the window. Rejections never touch
// the window.
func (s *Session) Feed(curr domain.RawReading) (domain.RateSample, domain.ValidationOutcome) {
	outcome := s.validator.Validate(s.prev, curr)

	baseline := curr
	s.prev = &baseline

	if !outcome.Accepted {
		s.rejects[outcome.Reason]++
		return domain.RateSample{}, outcome
	}

	sample := domain.RateSample{
		At:             curr.At,
		InMbps:         round2(Mbps(outcome.DeltaIn, outcome.ElapsedSeconds)),
		OutMbps:        round2(Mbps(outcome.DeltaOut, outcome.ElapsedSeconds)),
		OctetsIn:       curr.OctetsIn,
		OctetsOut:      curr.OctetsOut,
		ElapsedSeconds: round3(outcome.ElapsedSeconds),
	}

	s.window.Append(sample)
	return sample, outcome
}

func (s *Session) Snapshot(limit int) []domain.RateSample {
	return s.window.Snapshot(limit)
}

func (s *Session) Len() int {
	return s.window.Len()
}

// Rejections returns a copy of the per-reason reject counters, so callers
// can surface diagnostic counts.
func (s *Session) Rejections() map[domain.RejectReason]int {
	out := make(map[domain.RejectReason]int, len(s.rejects))
	for reason, n := range s.rejects {
		out[reason] = n
	}
	return out
}

// Reset clears the window, the baseline and the counters. Stopping and
// restarting always resets history; there is no pause.
func (s *Session) Reset() {
	s.window.Clear()
	s.prev = nil
	s.rejects = make(map[domain.RejectReason]int)
}
