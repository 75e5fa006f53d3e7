package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/wilsonritt/snmp-monitor/internal/domain"
)

type MonitorHandler struct {
	svc domain.MonitorService
}

func NewMonitorHandler(svc domain.MonitorService) *MonitorHandler {
	return &MonitorHandler{svc: svc}
}

// Discover lists a device's interfaces without starting a session.
func (h *MonitorHandler) Discover(w http.ResponseWriter, r *http.Request) {
	var req domain.DiscoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	interfaces, err := h.svc.Discover(r.Context(), req)
	if err != nil {
		monitorError(w, err)
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: interfaces})
}

func (h *MonitorHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req domain.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	session, err := h.svc.Start(r.Context(), req)
	if err != nil {
		monitorError(w, err)
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{
		Message: "Monitoring started.",
		Data:    session,
	})
}

func (h *MonitorHandler) Index(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, http.StatusOK, APIResponse{Data: h.svc.List()})
}

func (h *MonitorHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.svc.Get(id)
	if err != nil {
		monitorError(w, err)
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: session})
}

func (h *MonitorHandler) Stop(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.svc.Stop(id)
	if err != nil {
		monitorError(w, err)
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "Monitoring stopped.",
		Data:    session,
	})
}

func (h *MonitorHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Remove(id); err != nil {
		monitorError(w, err)
		return
	}

	JSONSuccess(w, http.StatusNoContent, APIResponse{})
}

// Samples returns the newest samples with the display unit and summary
// stats chosen over the visible window.
func (h *MonitorHandler) Samples(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			JSONError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	res, err := h.svc.Snapshot(id, limit)
	if err != nil {
		monitorError(w, err)
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: res})
}

// Latest returns the most recent accepted sample without reading the
// whole window.
func (h *MonitorHandler) Latest(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	sample, err := h.svc.Latest(id)
	if err != nil {
		monitorError(w, err)
		return
	}

	if sample == nil {
		JSONError(w, http.StatusNotFound, "No samples collected yet")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: sample})
}

func (h *MonitorHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	body, filename, err := h.svc.ExportCSV(id)
	if err != nil {
		monitorError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func monitorError(w http.ResponseWriter, err error) {
	var transportErr *domain.TransportError

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		JSONError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, domain.ErrSessionNotRunning):
		JSONError(w, http.StatusConflict, "Session is not running")
	case errors.Is(err, domain.ErrInvalidTarget),
		errors.Is(err, domain.ErrNoDirections),
		errors.Is(err, domain.ErrUnknownInterface),
		errors.Is(err, domain.ErrNoInterfaces):
		JSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &transportErr):
		JSONError(w, http.StatusBadGateway, err.Error())
	default:
		JSONError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
