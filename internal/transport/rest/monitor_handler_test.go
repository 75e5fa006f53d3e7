package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
)

type stubMonitorService struct {
	snapshot    *domain.SnapshotResult
	snapshotID  uuid.UUID
	limit       int
	snapshotErr error
}

func (s *stubMonitorService) Discover(ctx context.Context, req domain.DiscoverRequest) (map[int]string, error) {
	return nil, nil
}

func (s *stubMonitorService) Start(ctx context.Context, req domain.StartSessionRequest) (*domain.Session, error) {
	return nil, nil
}

func (s *stubMonitorService) Stop(id uuid.UUID) (*domain.Session, error) { return nil, nil }
func (s *stubMonitorService) Remove(id uuid.UUID) error                  { return nil }
func (s *stubMonitorService) Get(id uuid.UUID) (*domain.Session, error)  { return nil, nil }
func (s *stubMonitorService) List() []*domain.Session                    { return nil }

func (s *stubMonitorService) Snapshot(id uuid.UUID, limit int) (*domain.SnapshotResult, error) {
	s.snapshotID = id
	s.limit = limit
	return s.snapshot, s.snapshotErr
}

func (s *stubMonitorService) Latest(id uuid.UUID) (*domain.RateSample, error) { return nil, nil }

func (s *stubMonitorService) ExportCSV(id uuid.UUID) ([]byte, string, error) {
	return []byte("timestamp,in,out,oct_in,oct_out,delta_time\n"), "eth0_traffic.csv", nil
}

func samplesRequest(t *testing.T, h *MonitorHandler, target string) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/{id}/samples", h.Samples)
	mux.HandleFunc("GET /sessions/{id}/export", h.Export)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSamplesPassesLimit(t *testing.T) {
	stub := &stubMonitorService{
		snapshot: &domain.SnapshotResult{
			Samples: []domain.RateSample{{At: time.Now(), InMbps: 1.0}},
			Unit:    domain.UnitMbps,
			Factor:  1,
		},
	}
	h := NewMonitorHandler(stub)

	id := uuid.New()
	rec := samplesRequest(t, h, "/sessions/"+id.String()+"/samples?limit=25")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.snapshotID != id {
		t.Fatalf("expected session id %s, got %s", id, stub.snapshotID)
	}
	if stub.limit != 25 {
		t.Fatalf("expected limit 25, got %d", stub.limit)
	}
}

func TestSamplesRejectsBadInput(t *testing.T) {
	h := NewMonitorHandler(&stubMonitorService{})

	rec := samplesRequest(t, h, "/sessions/not-a-uuid/samples")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}

	rec = samplesRequest(t, h, "/sessions/"+uuid.NewString()+"/samples?limit=-3")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative limit, got %d", rec.Code)
	}
}

func TestSamplesMapsSessionNotFound(t *testing.T) {
	h := NewMonitorHandler(&stubMonitorService{snapshotErr: domain.ErrSessionNotFound})

	rec := samplesRequest(t, h, "/sessions/"+uuid.NewString()+"/samples")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExportSetsCSVHeaders(t *testing.T) {
	h := NewMonitorHandler(&stubMonitorService{})

	rec := samplesRequest(t, h, "/sessions/"+uuid.NewString()+"/export")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected csv content type, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "eth0_traffic.csv") {
		t.Fatalf("expected filename in disposition, got %q", cd)
	}
}
