package engine

import "github.com/wilsonritt/snmp-monitor/internal/domain"

// Summarize computes max/min/last per enabled direction over a snapshot,
// scaled by the unit chosen for the batch.
func Summarize(samples []domain.RateSample, monitorIn, monitorOut bool) domain.Stats {
	var values []float64
	for _, s := range samples {
		if monitorIn {
			values = append(values, s.InMbps)
		}
		if monitorOut {
			values = append(values, s.OutMbps)
		}
	}

	unit, factor := ChooseUnit(values)
	stats := domain.Stats{Unit: unit}

	if len(samples) == 0 {
		return stats
	}

	if monitorIn {
		stats.In = summarizeDirection(samples, factor, func(s domain.RateSample) float64 { return s.InMbps })
	}
	if monitorOut {
		stats.Out = summarizeDirection(samples, factor, func(s domain.RateSample) float64 { return s.OutMbps })
	}

	return stats
}

func summarizeDirection(samples []domain.RateSample, factor float64, value func(domain.RateSample) float64) *domain.DirectionStats {
	max := value(samples[0])
	min := max

	for _, s := range samples[1:] {
		v := value(s)
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}

	return &domain.DirectionStats{
		Max:  round2(max / factor),
		Min:  round2(min / factor),
		Last: round2(value(samples[len(samples)-1]) / factor),
	}
}
