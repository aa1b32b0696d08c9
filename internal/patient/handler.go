package patient

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
	CreatePatient(ctx context.Context, dto CreatePatientDTO) (*Patient, error)
	ListPatients(ctx context.Context) []Row
	SearchPatients(ctx context.Context, term string) []Row
	UpdatePatient(ctx context.Context, id int64, dto UpdatePatientDTO) (*Patient, error)
	DeletePatient(ctx context.Context, id int64) error
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

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var dto CreatePatientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePatient: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreatePatient(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// ListPatients also serves search: GET /patients?q=term
func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	if term := r.URL.Query().Get("q"); term != "" {
		h.WriteJSON(w, http.StatusOK, h.Service.SearchPatients(r.Context(), term))
		return
	}
	h.WriteJSON(w, http.StatusOK, h.Service.ListPatients(r.Context()))
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto UpdatePatientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdatePatient: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdatePatient(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeletePatient(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid patient id", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid patient id")
		return 0, false
	}
	return id, true
}
