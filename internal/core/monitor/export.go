package monitor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ExportCSV renders the whole retained window as tabular rows, one per
// accepted sample, with the stored (unscaled) Mbps values. Returns the
// file body and a suggested filename.
func (s *Service) ExportCSV(id uuid.UUID) ([]byte, string, error) {
	rs, err := s.session(id)
	if err != nil {
		return nil, "", err
	}

	rs.mu.Lock()
	samples := rs.engine.Snapshot(0)
	name := rs.view.InterfaceName
	rs.mu.Unlock()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"timestamp", "in", "out", "oct_in", "oct_out", "delta_time"}); err != nil {
		return nil, "", fmt.Errorf("write csv header: %w", err)
	}

	for _, sample := range samples {
		row := []string{
			sample.At.Format("15:04:05"),
			strconv.FormatFloat(sample.InMbps, 'f', -1, 64),
			strconv.FormatFloat(sample.OutMbps, 'f', -1, 64),
			strconv.FormatUint(sample.OctetsIn, 10),
			strconv.FormatUint(sample.OctetsOut, 10),
			strconv.FormatFloat(sample.ElapsedSeconds, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), exportFilename(name), nil
}

func exportFilename(interfaceName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, interfaceName)

	if name == "" {
		name = "interface"
	}
	return name + "_traffic.csv"
}
