package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wilsonritt/snmp-monitor/internal/config"
	"github.com/wilsonritt/snmp-monitor/internal/core/engine"
	"github.com/wilsonritt/snmp-monitor/internal/domain"
	"github.com/wilsonritt/snmp-monitor/internal/logger"
	"github.com/wilsonritt/snmp-monitor/internal/storage/snapshot"
)

// Publisher pushes accepted samples and session lifecycle events out to
// subscribed clients.
type Publisher interface {
	Broadcast(channel, event string, payload any)
}

type Service struct {
	cfg       *config.Config
	log       logger.Logger
	newSource SourceFactory
	publish   Publisher

	mu       sync.RWMutex
	sessions map[uuid.UUID]*runningSession
}

// runningSession pairs the engine state with its polling loop. The inner
// mutex serializes the tick goroutine against HTTP readers; the engine
// itself stays lock-free.
type runningSession struct {
	mu     sync.Mutex
	view   domain.Session
	engine *engine.Session
	source CounterSource
	latest *snapshot.SampleStore
	cancel context.CancelFunc
}

func NewService(cfg *config.Config, newSource SourceFactory, publish Publisher, log logger.Logger) *Service {
	return &Service{
		cfg:       cfg,
		log:       log,
		newSource: newSource,
		publish:   publish,
		sessions:  make(map[uuid.UUID]*runningSession),
	}
}

func (s *Service) Discover(ctx context.Context, req domain.DiscoverRequest) (map[int]string, error) {
	source, err := s.newSource(TargetSpec{
		Target:    req.Target,
		Community: defaultCommunity(req.Community),
		Version:   defaultVersion(req.Version),
	})
	if err != nil {
		return nil, err
	}
	defer source.Close()

	return source.ListInterfaces(ctx)
}

// Start validates the request, probes the device and launches one polling
// goroutine for the new session.
func (s *Service) Start(ctx context.Context, req domain.StartSessionRequest) (*domain.Session, error) {
	monitorIn := req.MonitorIn == nil || *req.MonitorIn
	monitorOut := req.MonitorOut == nil || *req.MonitorOut
	if !monitorIn && !monitorOut {
		return nil, domain.ErrNoDirections
	}

	windowSize := s.cfg.WindowSize
	if req.WindowSize != 0 {
		windowSize = config.ClampWindowSize(req.WindowSize)
	}

	source, err := s.newSource(TargetSpec{
		Target:    req.Target,
		Community: defaultCommunity(req.Community),
		Version:   defaultVersion(req.Version),
	})
	if err != nil {
		return nil, err
	}

	interfaces, err := source.ListInterfaces(ctx)
	if err != nil {
		source.Close()
		return nil, err
	}

	name, ok := interfaces[req.InterfaceIndex]
	if !ok {
		source.Close()
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownInterface, req.InterfaceIndex)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	rs := &runningSession{
		view: domain.Session{
			ID:             uuid.New(),
			Target:         req.Target,
			InterfaceIndex: req.InterfaceIndex,
			InterfaceName:  name,
			State:          domain.SessionMonitoring,
			MonitorIn:      monitorIn,
			MonitorOut:     monitorOut,
			WindowSize:     windowSize,
			PollInterval:   s.cfg.PollInterval,
			StartedAt:      time.Now(),
		},
		engine: engine.NewSession(windowSize),
		source: source,
		latest: snapshot.NewSampleStore(),
		cancel: cancel,
	}

	s.mu.Lock()
	s.sessions[rs.view.ID] = rs
	s.mu.Unlock()

	s.log.Info("monitor: session started",
		"session_id", rs.view.ID,
		"target", rs.view.Target,
		"interface", rs.view.InterfaceName,
		"window_size", windowSize,
	)

	go runLoop(runCtx, s.cfg.PollInterval, func(ctx context.Context) error {
		return s.tick(ctx, rs)
	})

	view := rs.view
	return &view, nil
}

// tick runs one poll: fetch, feed, publish. A transport error is fatal
// for the session but the collected window stays readable.
func (s *Service) tick(ctx context.Context, rs *runningSession) error {
	curr, err := rs.source.FetchCounters(ctx, rs.view.InterfaceIndex)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Error("monitor: poll failed, stopping session",
			"session_id", rs.view.ID, "error", err)
		s.finish(rs, err)
		return err
	}

	rs.mu.Lock()
	sample, outcome := rs.engine.Feed(curr)
	rs.view.SampleCount = rs.engine.Len()
	id := rs.view.ID
	rs.mu.Unlock()

	if !outcome.Accepted {
		s.log.Debug("monitor: sample withheld",
			"session_id", id, "reason", outcome.Reason, "elapsed", outcome.ElapsedSeconds)
		return nil
	}

	rs.latest.Set(sample)
	s.publish.Broadcast(sessionChannel(id), "session.sample", sample)
	return nil
}

func (s *Service) Stop(id uuid.UUID) (*domain.Session, error) {
	rs, err := s.session(id)
	if err != nil {
		return nil, err
	}

	rs.cancel()
	if !s.finish(rs, nil) {
		return nil, domain.ErrSessionNotRunning
	}

	view := s.viewOf(rs)
	return &view, nil
}

func (s *Service) Remove(id uuid.UUID) error {
	rs, err := s.session(id)
	if err != nil {
		return err
	}

	rs.cancel()
	s.finish(rs, nil)

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.log.Info("monitor: session removed", "session_id", id)
	return nil
}

func (s *Service) Get(id uuid.UUID) (*domain.Session, error) {
	rs, err := s.session(id)
	if err != nil {
		return nil, err
	}

	view := s.viewOf(rs)
	return &view, nil
}

func (s *Service) List() []*domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Session, 0, len(s.sessions))
	for _, rs := range s.sessions {
		view := s.viewOf(rs)
		out = append(out, &view)
	}
	return out
}

// Snapshot returns the newest samples with the unit chosen over the
// values actually on display, plus summary stats in that unit.
func (s *Service) Snapshot(id uuid.UUID, limit int) (*domain.SnapshotResult, error) {
	rs, err := s.session(id)
	if err != nil {
		return nil, err
	}

	rs.mu.Lock()
	samples := rs.engine.Snapshot(limit)
	monitorIn := rs.view.MonitorIn
	monitorOut := rs.view.MonitorOut
	rs.mu.Unlock()

	var values []float64
	for _, sample := range samples {
		if monitorIn {
			values = append(values, sample.InMbps)
		}
		if monitorOut {
			values = append(values, sample.OutMbps)
		}
	}

	unit, factor := engine.ChooseUnit(values)

	return &domain.SnapshotResult{
		Samples: samples,
		Unit:    unit,
		Factor:  factor,
		Stats:   engine.Summarize(samples, monitorIn, monitorOut),
	}, nil
}

// Latest returns the most recent accepted sample without touching the
// window, for cheap polling reads.
func (s *Service) Latest(id uuid.UUID) (*domain.RateSample, error) {
	rs, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sample := rs.latest.Get()
	if sample.At.IsZero() {
		return nil, nil
	}
	return &sample, nil
}

// finish transitions Monitoring -> Idle exactly once. Returns false if
// the session was already idle.
func (s *Service) finish(rs *runningSession, cause error) bool {
	rs.mu.Lock()
	if rs.view.State != domain.SessionMonitoring {
		rs.mu.Unlock()
		return false
	}

	now := time.Now()
	rs.view.State = domain.SessionIdle
	rs.view.StoppedAt = &now
	if cause != nil {
		rs.view.LastError = cause.Error()
	}
	id := rs.view.ID
	rs.mu.Unlock()

	if err := rs.source.Close(); err != nil {
		s.log.Warn("monitor: closing counter source", "session_id", id, "error", err)
	}

	s.publish.Broadcast(sessionChannel(id), "session.stopped", map[string]any{
		"session_id": id,
		"error":      errString(cause),
	})

	s.log.Info("monitor: session stopped", "session_id", id, "error", errString(cause))
	return true
}

func (s *Service) session(id uuid.UUID) (*runningSession, error) {
	s.mu.RLock()
	rs, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return rs, nil
}

func (s *Service) viewOf(rs *runningSession) domain.Session {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	view := rs.view
	view.SampleCount = rs.engine.Len()
	view.Rejections = rs.engine.Rejections()
	return view
}

func sessionChannel(id uuid.UUID) string {
	return "session:" + id.String()
}

func defaultCommunity(community string) string {
	if community == "" {
		return "public"
	}
	return community
}

func defaultVersion(version string) string {
	if version == "" {
		return "2c"
	}
	return version
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
