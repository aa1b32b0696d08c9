package appointment

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
	CreateAppointment(ctx context.Context, dto CreateAppointmentDTO) (*Appointment, error)
	ListAppointments(ctx context.Context, filter Filter) []Row
	ListAppointmentsInRange(ctx context.Context, startDate, endDate string) []Row
	UpdateAppointment(ctx context.Context, id int64, dto UpdateAppointmentDTO) (*Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
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

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var dto CreateAppointmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAppointment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateAppointment(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// ListAppointments supports three shapes:
//
//	GET /appointments                        all
//	GET /appointments?date=D&staff_id=N      day and/or staff filter (AND)
//	GET /appointments?start=D&end=D          inclusive weekly range
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if start, end := q.Get("start"), q.Get("end"); start != "" && end != "" {
		h.WriteJSON(w, http.StatusOK, h.Service.ListAppointmentsInRange(r.Context(), start, end))
		return
	}

	filter := Filter{Date: q.Get("date")}
	if staffStr := q.Get("staff_id"); staffStr != "" {
		staffID, err := strconv.ParseInt(staffStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid staff_id")
			return
		}
		filter.StaffID = &staffID
	}

	h.WriteJSON(w, http.StatusOK, h.Service.ListAppointments(r.Context(), filter))
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto UpdateAppointmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAppointment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateAppointment(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteAppointment(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid appointment id", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid appointment id")
		return 0, false
	}
	return id, true
}
