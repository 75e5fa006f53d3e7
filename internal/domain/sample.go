// Package domain
package domain

import "time"

// RawReading is one poll of an interface's cumulative octet counters.
// Counters grow monotonically until the device resets or the counter
// wraps; neither is distinguishable from the other here.
type RawReading struct {
	InterfaceIndex int       `json:"interface_index"`
	At             time.Time `json:"at"`
	OctetsIn       uint64    `json:"octets_in"`
	OctetsOut      uint64    `json:"octets_out"`
}

// RateSample is a derived throughput data point. Mbps values are rounded
// to two decimals when the sample is built so stored values stay stable;
// unit scaling happens later, at presentation time.
type RateSample struct {
	At             time.Time `json:"timestamp"`
	InMbps         float64   `json:"in"`
	OutMbps        float64   `json:"out"`
	OctetsIn       uint64    `json:"oct_in"`
	OctetsOut      uint64    `json:"oct_out"`
	ElapsedSeconds float64   `json:"delta_time"`
}

type RejectReason string

const (
	RejectFirstSample       RejectReason = "first_sample"
	RejectElapsedOutOfRange RejectReason = "elapsed_out_of_range"
	RejectNegativeDelta     RejectReason = "negative_delta"
	RejectZeroDelta         RejectReason = "zero_delta"
)

// ValidationOutcome is either an acceptance carrying the validated deltas
// or a rejection carrying the reason. A rejection is not an error; it
// withholds one sample and the loop continues on the next tick.
type ValidationOutcome struct {
	Accepted       bool
	Reason         RejectReason
	ElapsedSeconds float64
	DeltaIn        uint64
	DeltaOut       uint64
}

type Unit string

const (
	UnitMbps Unit = "Mbps"
	UnitGbps Unit = "Gbps"
)

type DirectionStats struct {
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
	Last float64 `json:"last"`
}

// Stats summarizes the currently visible window per direction, already
// scaled to Unit.
type Stats struct {
	Unit Unit            `json:"unit"`
	In   *DirectionStats `json:"in,omitempty"`
	Out  *DirectionStats `json:"out,omitempty"`
}
