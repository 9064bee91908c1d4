package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/go-hds-keeper/internal/utils"
	"github.com/MKhiriev/go-hds-keeper/models"
)

type syncAuditResponse struct {
	Synced int `json:"synced"`
}

func (h *Handler) complianceStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.ComplianceService.Status(r.Context()), http.StatusOK)
}

func (h *Handler) syncAudit(w http.ResponseWriter, r *http.Request) {
	synced, err := h.services.ComplianceService.SyncAudit(r.Context())
	if err != nil {
		writeServiceError(w, r, "handler.syncAudit", err)
		return
	}

	utils.WriteJSON(w, syncAuditResponse{Synced: synced}, http.StatusOK)
}

func (h *Handler) auditTrail(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAuditFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, "handler.auditTrail", err)
		return
	}

	events, err := h.services.ComplianceService.AuditTrail(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, "handler.auditTrail", err)
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}

	utils.WriteJSON(w, events, http.StatusOK)
}

func parseAuditFilter(values url.Values) (models.AuditFilter, error) {
	filter := models.AuditFilter{
		ActorID:   values.Get("actorId"),
		Resource:  values.Get("resource"),
		EventType: models.AuditEventType(values.Get("eventType")),
	}

	var err error
	if filter.Since, err = parseTimeParam(values, "since"); err != nil {
		return models.AuditFilter{}, err
	}
	if filter.Until, err = parseTimeParam(values, "until"); err != nil {
		return models.AuditFilter{}, err
	}

	if raw := values.Get("limit"); raw != "" {
		filter.Limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.AuditFilter{}, fmt.Errorf("%w: limit: %w", ErrInvalidQuery, err)
		}
	}

	return filter, nil
}

func parseTimeParam(values url.Values, name string) (time.Time, error) {
	raw := values.Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %w", ErrInvalidQuery, name, err)
	}
	return t, nil
}
