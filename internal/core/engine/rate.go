package engine

import "math"

// Mbps converts an octet delta over an elapsed interval into megabits per
// second. No rounding here; rounding happens once, when a sample is built.
func Mbps(deltaOctets uint64, elapsedSeconds float64) float64 {
	return float64(deltaOctets) * 8 / (elapsedSeconds * 1_000_000)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
