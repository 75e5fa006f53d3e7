package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionNotRunning = errors.New("session is not running")
	ErrInvalidTarget     = errors.New("invalid target address")
	ErrUnknownInterface  = errors.New("unknown interface index")
	ErrNoDirections      = errors.New("at least one direction must be monitored")
	ErrNoInterfaces      = errors.New("no interfaces found")
)

type TransportErrorKind string

const (
	TransportConnection TransportErrorKind = "connection"
	TransportAuth       TransportErrorKind = "auth"
	TransportTimeout    TransportErrorKind = "timeout"
)

// TransportError is a protocol-level failure talking to the device. During
// an active session it is fatal for the session, not for the process.
type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type SessionState string

const (
	SessionMonitoring SessionState = "monitoring"
	SessionIdle       SessionState = "idle"
)

// Session is the externally visible view of one monitoring run. The
// rolling window it owns stays readable after the session goes idle,
// until the session is removed.
type Session struct {
	ID             uuid.UUID            `json:"id"`
	Target         string               `json:"target"`
	InterfaceIndex int                  `json:"interface_index"`
	InterfaceName  string               `json:"interface_name"`
	State          SessionState         `json:"state"`
	MonitorIn      bool                 `json:"monitor_in"`
	MonitorOut     bool                 `json:"monitor_out"`
	WindowSize     int                  `json:"window_size"`
	PollInterval   time.Duration        `json:"-"`
	StartedAt      time.Time            `json:"started_at"`
	StoppedAt      *time.Time           `json:"stopped_at,omitempty"`
	SampleCount    int                  `json:"sample_count"`
	Rejections     map[RejectReason]int `json:"rejections"`
	LastError      string               `json:"last_error,omitempty"`
}

type DiscoverRequest struct {
	Target    string `json:"target" validate:"required"`
	Community string `json:"community"`
	Version   string `json:"version" validate:"omitempty,oneof=1 2c"`
}

type StartSessionRequest struct {
	Target         string `json:"target" validate:"required"`
	Community      string `json:"community"`
	Version        string `json:"version" validate:"omitempty,oneof=1 2c"`
	InterfaceIndex int    `json:"interface_index" validate:"required,min=1"`
	WindowSize     int    `json:"window_size" validate:"omitempty,min=5,max=300"`

	// nil means enabled; both false is a config error.
	MonitorIn  *bool `json:"monitor_in"`
	MonitorOut *bool `json:"monitor_out"`
}

type SnapshotResult struct {
	Samples []RateSample `json:"samples"`
	Unit    Unit         `json:"unit"`
	Factor  float64      `json:"factor"`
	Stats   Stats        `json:"stats"`
}

type MonitorService interface {
	Discover(ctx context.Context, req DiscoverRequest) (map[int]string, error)
	Start(ctx context.Context, req StartSessionRequest) (*Session, error)
	Stop(id uuid.UUID) (*Session, error)
	Remove(id uuid.UUID) error
	Get(id uuid.UUID) (*Session, error)
	List() []*Session
	Snapshot(id uuid.UUID, limit int) (*SnapshotResult, error)
	Latest(id uuid.UUID) (*RateSample, error)
	ExportCSV(id uuid.UUID) ([]byte, string, error)
}
