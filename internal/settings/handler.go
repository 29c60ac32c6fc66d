package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/rowstore"
)

const maxImageBytes = 2 << 20 // matches the hosted backend's row size limit

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Update)
	r.Post("/logo", h.UploadLogo)
	r.Post("/banner", h.UploadBanner)
}

// Get serves the authoritative settings, falling back to the bootstrap
// copy when the backend is unreachable so the UI can still paint.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		var backend *rowstore.BackendError
		if errors.Is(err, rowstore.ErrNotConfigured) || errors.As(err, &backend) {
			h.logger.Warn("brand settings fetch failed, serving bootstrap copy", slog.Any("error", err))
			if cached, cacheErr := h.service.Bootstrap(r.Context()); cacheErr == nil {
				httpx.JSON(w, http.StatusOK, cached)
				return
			}
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBrandRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	current, err := h.service.Get(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if req.ContactNumber != nil {
		current.ContactNumber = *req.ContactNumber
	}
	if err := h.service.Save(r.Context(), *current); err != nil {
		h.logger.Error("save brand settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, current)
}

func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, h.service.SetLogo)
}

func (h *Handler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, h.service.SetBanner)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, image []byte) (*BrandSettings, error)) {
	image, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "could not read image body")
		return
	}
	if len(image) == 0 || len(image) > maxImageBytes {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "image must be between 1 byte and 2 MiB")
		return
	}

	settings, err := set(r.Context(), image)
	if err != nil {
		h.logger.Error("store brand image", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}
