package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pasarcli/internal/brandstore"
	apierrors "pasarcli/internal/errors"
	apiv1 "pasarcli/pkg/contracts/api/v1"
)

// BrandsHandler manages the brand mapping table.
type BrandsHandler struct {
	store        *brandstore.Store
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewBrandsHandler creates a brands handler.
func NewBrandsHandler(store *brandstore.Store, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *BrandsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrandsHandler{
		store:        store,
		logger:       logger.With(slog.String("component", "brands_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the brand routes.
func (h *BrandsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Upload)
	return r
}

// List handles GET /api/brands.
func (h *BrandsHandler) List(w http.ResponseWriter, r *http.Request) {
	mappings := h.store.Mappings()
	render.JSON(w, r, apiv1.BrandListResponse{
		Success:  true,
		Count:    len(mappings),
		Mappings: mappings,
	})
}

// Upload handles POST /api/brands: a multipart "file" part replaces the
// whole mapping table.
func (h *BrandsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(fmt.Errorf("multipart form: %w", err)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "a mapping file is required"))
		return
	}
	defer file.Close()

	if err := validUploadName(header.Filename); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	mappings, err := brandstore.ParseFile(header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if err := h.store.Replace(r.Context(), mappings); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("brand snapshot", err))
		return
	}

	h.logger.InfoContext(r.Context(), "brand mappings uploaded",
		slog.String("file", header.Filename),
		slog.Int("count", len(mappings)))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, apiv1.BrandUploadResponse{Success: true, Count: len(mappings)})
}
