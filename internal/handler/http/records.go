package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
	"github.com/MKhiriev/go-hds-keeper/models"
)

const (
	modeEdit    = "edit"
	modeDisplay = "display"
)

type saveRecordResponse struct {
	ID string `json:"id"`
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	h.saveRecord(w, r, "", http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	h.saveRecord(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (h *Handler) saveRecord(w http.ResponseWriter, r *http.Request, id string, status int) {
	record, err := decodeRecord(r)
	if err != nil {
		writeServiceError(w, r, "handler.saveRecord", err)
		return
	}

	savedID, err := h.services.RecordService.Save(r.Context(), chi.URLParam(r, "recordType"), id, record)
	if err != nil {
		writeServiceError(w, r, "handler.saveRecord", err)
		return
	}

	utils.WriteJSON(w, saveRecordResponse{ID: savedID}, status)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	var forEditing bool
	switch mode := r.URL.Query().Get("mode"); mode {
	case "", modeDisplay:
	case modeEdit:
		forEditing = true
	default:
		writeServiceError(w, r, "handler.getRecord", fmt.Errorf("%w: mode %q", ErrInvalidQuery, mode))
		return
	}

	record, err := h.services.RecordService.Get(r.Context(), chi.URLParam(r, "recordType"), chi.URLParam(r, "id"), forEditing)
	if err != nil {
		writeServiceError(w, r, "handler.getRecord", err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) searchRecords(w http.ResponseWriter, r *http.Request) {
	query := models.PseudonymQuery{
		RecordType: chi.URLParam(r, "recordType"),
		Field:      r.URL.Query().Get("field"),
		Value:      r.URL.Query().Get("value"),
	}

	records, err := h.services.RecordService.FindByPseudonym(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, "handler.searchRecords", err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	err := h.services.RecordService.Delete(r.Context(), chi.URLParam(r, "recordType"), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "handler.deleteRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) diagnoseRecord(w http.ResponseWriter, r *http.Request) {
	diagnostics, err := h.services.RecordService.Diagnose(r.Context(), chi.URLParam(r, "recordType"), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "handler.diagnoseRecord", err)
		return
	}

	utils.WriteJSON(w, diagnostics, http.StatusOK)
}

func decodeRecord(r *http.Request) (models.Record, error) {
	var record models.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "handler.decodeRecord").Send()
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if record == nil {
		return nil, ErrInvalidJSON
	}
	return record, nil
}
