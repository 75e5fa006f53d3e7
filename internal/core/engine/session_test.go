package engine

import (
	"testing"
	"time"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
)

func TestSessionWarmUpSeedsBaseline(t *testing.T) {
	s := NewSession(10)
	base := time.Unix(1700000000, 0)

	_, outcome := s.Feed(reading(base, 1000, 2000))
	if outcome.Reason != domain.RejectFirstSample {
		t.Fatalf("expected first sample rejection, got %q", outcome.Reason)
	}
	if s.Len() != 0 {
		t.Fatal("warm-up sample must never reach the window")
	}

	// The warm-up reading became the baseline: the next poll one second
	// later is comparable and accepted.
	sample, outcome := s.Feed(reading(base.Add(time.Second), 126000, 2000))
	if !outcome.Accepted {
		t.Fatalf("expected acceptance against warm-up baseline, got %q", outcome.Reason)
	}
	if sample.InMbps != 1.0 {
		t.Fatalf("expected 1.0 Mbps inbound, got %v", sample.InMbps)
	}
}

func TestSessionRejectionAdvancesBaseline(t *testing.T) {
	s := NewSession(10)
	base := time.Unix(1700000000, 0)

	s.Feed(reading(base, 10000, 0))
	// Counter reset: rejected, but still becomes the new baseline.
	_, outcome := s.Feed(reading(base.Add(time.Second), 1000, 0))
	if outcome.Reason != domain.RejectNegativeDelta {
		t.Fatalf("expected negative delta rejection, got %q", outcome.Reason)
	}
	if s.Len() != 0 {
		t.Fatal("rejection must not mutate the window")
	}

	// Next tick compares against the post-reset reading, not the stale one.
	_, outcome = s.Feed(reading(base.Add(2*time.Second), 2000, 0))
	if !outcome.Accepted {
		t.Fatalf("expected resynchronized acceptance, got %q", outcome.Reason)
	}
	if outcome.DeltaIn != 1000 {
		t.Fatalf("expected delta against new baseline, got %d", outcome.DeltaIn)
	}
}

func TestSessionSampleRounding(t *testing.T) {
	s := NewSession(10)
	base := time.Unix(1700000000, 0)

	s.Feed(reading(base, 0, 0))
	sample, outcome := s.Feed(reading(base.Add(1100*time.Millisecond), 170000, 41000))
	if !outcome.Accepted {
		t.Fatalf("expected acceptance, got %q", outcome.Reason)
	}

	// 170000*8/(1.1*1e6) = 1.23636... and 41000*8/(1.1*1e6) = 0.29818...
	if sample.InMbps != 1.24 {
		t.Fatalf("expected inbound rounded to 1.24, got %v", sample.InMbps)
	}
	if sample.OutMbps != 0.3 {
		t.Fatalf("expected outbound rounded to 0.3, got %v", sample.OutMbps)
	}
	if sample.ElapsedSeconds != 1.1 {
		t.Fatalf("expected elapsed 1.1, got %v", sample.ElapsedSeconds)
	}
	if sample.OctetsIn != 170000 || sample.OctetsOut != 41000 {
		t.Fatalf("raw octets must carry through: in=%d out=%d", sample.OctetsIn, sample.OctetsOut)
	}
}

func TestSessionRejectionCounters(t *testing.T) {
	s := NewSession(10)
	base := time.Unix(1700000000, 0)

	// Warm-up, then one of each rejection kind around a single acceptance.
	s.Feed(reading(base, 1000, 1000))
	s.Feed(reading(base.Add(5*time.Second), 2000, 2000))
	s.Feed(reading(base.Add(6*time.Second), 2000, 2000))
	s.Feed(reading(base.Add(7*time.Second), 3000, 3000))
	s.Feed(reading(base.Add(8*time.Second), 1000, 1000))

	rejects := s.Rejections()
	want := map[domain.RejectReason]int{
		domain.RejectFirstSample:       1,
		domain.RejectElapsedOutOfRange: 1,
		domain.RejectZeroDelta:         1,
		domain.RejectNegativeDelta:     1,
	}
	for reason, n := range want {
		if rejects[reason] != n {
			t.Errorf("reason %q: expected %d, got %d", reason, n, rejects[reason])
		}
	}
	if s.Len() != 1 {
		t.Fatalf("expected exactly one accepted sample, got %d", s.Len())
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession(10)
	base := time.Unix(1700000000, 0)

	s.Feed(reading(base, 0, 0))
	s.Feed(reading(base.Add(time.Second), 1000, 1000))
	if s.Len() != 1 {
		t.Fatalf("expected one sample before reset, got %d", s.Len())
	}

	s.Reset()
	if s.Len() != 0 {
		t.Fatal("expected empty window after reset")
	}
	if len(s.Rejections()) != 0 {
		t.Fatal("expected cleared counters after reset")
	}

	// The baseline is gone too: the next feed is a warm-up again.
	_, outcome := s.Feed(reading(base.Add(2*time.Second), 2000, 2000))
	if outcome.Reason != domain.RejectFirstSample {
		t.Fatalf("expected first sample after reset, got %q", outcome.Reason)
	}
}

func TestSessionWindowEviction(t *testing.T) {
	s := NewSession(5)
	base := time.Unix(1700000000, 0)

	s.Feed(reading(base, 0, 0))
	for i := 1; i <= 8; i++ {
		s.Feed(reading(base.Add(time.Duration(i)*time.Second), uint64(i)*125000, 0))
	}

	got := s.Snapshot(0)
	if len(got) != 5 {
		t.Fatalf("expected window capped at 5, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i].At.After(got[i-1].At) {
			t.Fatal("snapshot must stay in chronological order")
		}
	}
}
