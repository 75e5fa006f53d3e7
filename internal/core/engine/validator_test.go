package engine

import (
	"math"
	"testing"
	"time"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
)

func reading(at time.Time, in, out uint64) domain.RawReading {
	return domain.RawReading{InterfaceIndex: 1, At: at, OctetsIn: in, OctetsOut: out}
}

func TestValidateFirstSample(t *testing.T) {
	v := NewValidator()
	base := time.Now()

	outcome := v.Validate(nil, reading(base, 1000, 2000))
	if outcome.Accepted {
		t.Fatal("expected first sample to be rejected")
	}
	if outcome.Reason != domain.RejectFirstSample {
		t.Fatalf("expected reason %q, got %q", domain.RejectFirstSample, outcome.Reason)
	}
}

func TestValidateRejections(t *testing.T) {
	base := time.Unix(1700000000, 0)

	tests := []struct {
		name   string
		prev   domain.RawReading
		curr   domain.RawReading
		reason domain.RejectReason
	}{
		{
			name:   "elapsed too short",
			prev:   reading(base, 1000, 1000),
			curr:   reading(base.Add(200*time.Millisecond), 2000, 2000),
			reason: domain.RejectElapsedOutOfRange,
		},
		{
			name:   "elapsed too long",
			prev:   reading(base, 1000, 1000),
			curr:   reading(base.Add(4200*time.Millisecond), 2000, 2000),
			reason: domain.RejectElapsedOutOfRange,
		},
		{
			name:   "counter reset",
			prev:   reading(base, 2000, 0),
			curr:   reading(base.Add(time.Second), 1000, 0),
			reason: domain.RejectNegativeDelta,
		},
		{
			name:   "outbound counter reset",
			prev:   reading(base, 1000, 5000),
			curr:   reading(base.Add(time.Second), 2000, 4000),
			reason: domain.RejectNegativeDelta,
		},
		{
			name:   "no traffic movement",
			prev:   reading(base, 1000, 1000),
			curr:   reading(base.Add(time.Second), 1000, 1000),
			reason: domain.RejectZeroDelta,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tt.prev
			outcome := v.Validate(&prev, tt.curr)
			if outcome.Accepted {
				t.Fatal("expected rejection")
			}
			if outcome.Reason != tt.reason {
				t.Fatalf("expected reason %q, got %q", tt.reason, outcome.Reason)
			}
		})
	}
}

func TestValidateAccept(t *testing.T) {
	base := time.Unix(1700000000, 0)
	prev := reading(base, 0, 0)
	curr := reading(base.Add(time.Second), 125000, 62500)

	v := NewValidator()
	outcome := v.Validate(&prev, curr)
	if !outcome.Accepted {
		t.Fatalf("expected acceptance, got reason %q", outcome.Reason)
	}
	if outcome.DeltaIn != 125000 || outcome.DeltaOut != 62500 {
		t.Fatalf("unexpected deltas: in=%d out=%d", outcome.DeltaIn, outcome.DeltaOut)
	}
	if math.Abs(outcome.ElapsedSeconds-1.0) > 1e-9 {
		t.Fatalf("expected elapsed 1.0s, got %f", outcome.ElapsedSeconds)
	}

	in := Mbps(outcome.DeltaIn, outcome.ElapsedSeconds)
	out := Mbps(outcome.DeltaOut, outcome.ElapsedSeconds)
	if math.Abs(in-1.0) > 1e-9 {
		t.Fatalf("expected 1.0 Mbps inbound, got %f", in)
	}
	if math.Abs(out-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 Mbps outbound, got %f", out)
	}
}

func TestValidateElapsedBoundaries(t *testing.T) {
	base := time.Unix(1700000000, 0)
	v := NewValidator()

	// Both boundaries are inclusive.
	for _, elapsed := range []time.Duration{500 * time.Millisecond, 3 * time.Second} {
		prev := reading(base, 0, 0)
		curr := reading(base.Add(elapsed), 1000, 1000)
		if outcome := v.Validate(&prev, curr); !outcome.Accepted {
			t.Fatalf("expected acceptance at elapsed %s, got reason %q", elapsed, outcome.Reason)
		}
	}
}

func TestMbpsFormula(t *testing.T) {
	tests := []struct {
		delta   uint64
		elapsed float64
		want    float64
	}{
		{125000, 1.0, 1.0},
		{125000, 2.0, 0.5},
		{1, 1.0, 8e-6},
		{250000000, 2.0, 1000.0},
	}

	for _, tt := range tests {
		got := Mbps(tt.delta, tt.elapsed)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Mbps(%d, %f) = %f, want %f", tt.delta, tt.elapsed, got, tt.want)
		}
	}
}
