package budgets

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jana-studio/taller/internal/observability"
	"github.com/jana-studio/taller/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	metrics *observability.Metrics
}

func NewHandler(logger *slog.Logger, service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, service: service, metrics: metrics}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/draft", h.NewDraft)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/edit", h.LoadForEdit)
	r.Put("/{id}", h.SaveDraft)
	r.Post("/{id}/confirm", h.Confirm)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrConfirmed) {
		httpx.Problem(w, http.StatusConflict, "Budget Confirmed", err.Error())
		return
	}
	if errors.Is(err, ErrLedgerWriteFailed) {
		httpx.Problem(w, http.StatusBadGateway, "Ledger Write Failed", err.Error())
		return
	}
	httpx.RespondError(w, err)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list budgets", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

// NewDraft returns a fresh working copy without persisting anything.
func (h *Handler) NewDraft(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.NewDraft())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) LoadForEdit(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.LoadForEdit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req SaveBudgetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	b, err := h.service.SaveDraft(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.logger.Error("save draft", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	h.metrics.BudgetEvent("saved")
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("confirm budget", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	h.metrics.BudgetEvent("confirmed")
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("delete budget", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	h.metrics.BudgetEvent("deleted")
	w.WriteHeader(http.StatusNoContent)
}
