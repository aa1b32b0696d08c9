package reporting

import (
	"context"
	"net/http"

	"github.com/nanihealth/clinic-management/internal/transport"
	"github.com/nanihealth/clinic-management/pkg/logger"
)

type ServiceAPI interface {
	RevenueSummary(ctx context.Context, startDate, endDate string) RevenueSummary
	AppointmentStatusCounts(ctx context.Context, date string) []StatusCount
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

// RevenueSummary serves GET /reports/revenue?start=D&end=D.
func (h *Handler) RevenueSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.WriteJSON(w, http.StatusOK, h.Service.RevenueSummary(r.Context(), q.Get("start"), q.Get("end")))
}

// AppointmentStatusCounts serves GET /reports/appointment-status?date=D.
func (h *Handler) AppointmentStatusCounts(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.AppointmentStatusCounts(r.Context(), r.URL.Query().Get("date")))
}
