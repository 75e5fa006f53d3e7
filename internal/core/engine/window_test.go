package engine

import (
	"testing"
	"time"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
)

func sampleAt(i int) domain.RateSample {
	return domain.RateSample{
		At:     time.Unix(1700000000+int64(i), 0),
		InMbps: float64(i),
	}
}

func TestWindowEviction(t *testing.T) {
	const capacity = 5
	const extra = 3

	w := NewWindow(capacity)
	for i := 0; i < capacity+extra; i++ {
		w.Append(sampleAt(i))
	}

	if w.Len() != capacity {
		t.Fatalf("expected length %d after overflow, got %d", capacity, w.Len())
	}

	got := w.Snapshot(0)
	for i, s := range got {
		want := float64(extra + i)
		if s.InMbps != want {
			t.Fatalf("position %d: expected sample %v, got %v", i, want, s.InMbps)
		}
	}
}

func TestWindowNeverExceedsCapacity(t *testing.T) {
	w := NewWindow(10)
	for i := 0; i < 100; i++ {
		w.Append(sampleAt(i))
		if w.Len() > 10 {
			t.Fatalf("window grew to %d after %d appends", w.Len(), i+1)
		}
	}
}

func TestWindowSnapshotLimit(t *testing.T) {
	w := NewWindow(10)
	for i := 0; i < 10; i++ {
		w.Append(sampleAt(i))
	}

	got := w.Snapshot(3)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	// Newest three, oldest first.
	for i, s := range got {
		if want := float64(7 + i); s.InMbps != want {
			t.Fatalf("position %d: expected %v, got %v", i, want, s.InMbps)
		}
	}

	// A narrow snapshot must not discard retained data.
	if w.Len() != 10 {
		t.Fatalf("snapshot changed retention: %d", w.Len())
	}

	if got := w.Snapshot(100); len(got) != 10 {
		t.Fatalf("limit above retention should return everything, got %d", len(got))
	}
}

func TestWindowSnapshotIsACopy(t *testing.T) {
	w := NewWindow(5)
	w.Append(sampleAt(1))

	got := w.Snapshot(0)
	got[0].InMbps = 999

	if w.Snapshot(0)[0].InMbps == 999 {
		t.Fatal("snapshot shares backing storage with the window")
	}
}

func TestWindowClear(t *testing.T) {
	w := NewWindow(5)
	for i := 0; i < 5; i++ {
		w.Append(sampleAt(i))
	}

	w.Clear()
	if w.Len() != 0 {
		t.Fatalf("expected empty window, got %d", w.Len())
	}
}
