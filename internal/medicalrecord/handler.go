package medicalrecord

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/nanihealth/clinic-management/internal/transport"
	"github.com/nanihealth/clinic-management/pkg/logger"
)

type ServiceAPI interface {
	CreateMedicalRecord(ctx context.Context, dto CreateMedicalRecordDTO) (*MedicalRecord, error)
	ListMedicalRecords(ctx context.Context, patientID *int64) []Row
	UpdateMedicalRecord(ctx context.Context, id int64, dto UpdateMedicalRecordDTO) (*MedicalRecord, error)
	DeleteMedicalRecord(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.Default()),
		Service:     service,
	}
}

func (h *Handler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var dto CreateMedicalRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateMedicalRecord: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateMedicalRecord(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// ListMedicalRecords returns all records, or one patient's chart with
// GET /medical-records?patient_id=N
func (h *Handler) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	var patientID *int64
	if pidStr := r.URL.Query().Get("patient_id"); pidStr != "" {
		pid, err := strconv.ParseInt(pidStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid patient_id")
			return
		}
		patientID = &pid
	}

	h.WriteJSON(w, http.StatusOK, h.Service.ListMedicalRecords(r.Context(), patientID))
}

func (h *Handler) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto UpdateMedicalRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateMedicalRecord: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateMedicalRecord(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteMedicalRecord(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid medical record id", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid medical record id")
		return 0, false
	}
	return id, true
}
