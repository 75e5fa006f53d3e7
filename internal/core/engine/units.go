package engine

import "github.com/wilsonritt/snmp-monitor/internal/domain"

const gbpsThreshold = 1000.0

// ChooseUnit picks the display unit for a batch of stored Mbps values:
// Gbps with factor 1000 when the peak reaches 1000 Mbps, plain Mbps
// otherwise. Recomputed per render over the visible window, never stored
// per sample, so the same sample may display in either unit as the
// window's peak changes.
func ChooseUnit(values []float64) (domain.Unit, float64) {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	if max >= gbpsThreshold {
		return domain.UnitGbps, 1000
	}
	return domain.UnitMbps, 1
}
