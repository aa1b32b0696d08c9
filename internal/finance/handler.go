package finance

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
	RecordTransaction(ctx context.Context, dto RecordTransactionDTO) (*FinancialRecord, error)
	ListTransactions(ctx context.Context, startDate, endDate string) []Row
	UpdateTransaction(ctx context.Context, id int64, dto UpdateTransactionDTO) (*FinancialRecord, error)
	DeleteTransaction(ctx context.Context, id int64) error
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

func (h *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var dto RecordTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RecordTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.RecordTransaction(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// ListTransactions returns all records, or an inclusive range with
// GET /finances?start=D&end=D
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.WriteJSON(w, http.StatusOK, h.Service.ListTransactions(r.Context(), q.Get("start"), q.Get("end")))
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto UpdateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateTransaction(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteTransaction(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid transaction id", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return 0, false
	}
	return id, true
}
