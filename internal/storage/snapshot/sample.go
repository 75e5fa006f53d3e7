package snapshot

import "github.com/wilsonritt/snmp-monitor/internal/domain"

// SampleStore keeps the most recent accepted rate sample of a session for
// cheap polling reads, independent of the rolling window.
type SampleStore struct {
	Store[domain.RateSample]
}

func NewSampleStore() *SampleStore {
	return &SampleStore{}
}
