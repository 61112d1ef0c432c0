package http

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "pasarcli/internal/errors"
	"pasarcli/internal/exporter"
	"pasarcli/internal/services"
	apiv1 "pasarcli/pkg/contracts/api/v1"
	"pasarcli/pkg/contracts/domain"
)

// ProcessHandler handles export-file processing requests.
type ProcessHandler struct {
	service      *services.ProcessingService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
	maxFiles     int
}

// NewProcessHandler creates a process handler.
func NewProcessHandler(service *services.ProcessingService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxFiles int) *ProcessHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxFiles <= 0 {
		maxFiles = 10
	}
	return &ProcessHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "process_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
		maxFiles:     maxFiles,
	}
}

// ProcessOrders handles POST /api/orders/process.
func (h *ProcessHandler) ProcessOrders(w http.ResponseWriter, r *http.Request) {
	req := apiv1.ProcessOrdersRequest{
		Marketplace: r.FormValue("marketplace"),
		Platform:    r.FormValue("platform"),
		Operator:    r.FormValue("operator"),
		Format:      r.FormValue("format"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, validationError(err))
		return
	}

	files, err := h.uploadedFiles(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.ProcessOrders(r.Context(), services.OrderRequest{
		Marketplace: domain.MarketplaceID(req.Marketplace),
		Platform:    req.Platform,
		Operator:    req.Operator,
	}, files)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	id := domain.MarketplaceID(req.Marketplace)
	switch req.Format {
	case "", "json":
		render.Status(r, http.StatusOK)
		render.JSON(w, r, apiv1.ProcessOrdersResponse{Success: true, Stats: result.Stats, Rows: result.Rows})
	case "xlsx":
		h.serveXLSX(w, r, downloadName("orders", id, "xlsx"), func(dst io.Writer) error {
			return exporter.NewExcelWriter(h.logger).WriteOrders(dst, id, result.Rows)
		})
	case "csv":
		h.serveCSV(w, r, downloadName("orders", id, "csv"), func(dst io.Writer) error {
			return exporter.NewCSVWriter(h.logger).WriteOrders(dst, id, result.Rows)
		})
	}
}

// ProcessIncome handles POST /api/income/process.
func (h *ProcessHandler) ProcessIncome(w http.ResponseWriter, r *http.Request) {
	req := apiv1.ProcessIncomeRequest{
		Marketplace: r.FormValue("marketplace"),
		Format:      r.FormValue("format"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, validationError(err))
		return
	}

	files, err := h.uploadedFiles(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	id := domain.MarketplaceID(req.Marketplace)
	result, err := h.service.ProcessIncome(r.Context(), id, files)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	switch req.Format {
	case "", "json":
		render.Status(r, http.StatusOK)
		render.JSON(w, r, apiv1.ProcessIncomeResponse{Success: true, Stats: result.Stats, Rows: result.Rows})
	case "xlsx":
		h.serveXLSX(w, r, downloadName("income", id, "xlsx"), func(dst io.Writer) error {
			return exporter.NewExcelWriter(h.logger).WriteIncome(dst, result.Rows)
		})
	case "csv":
		h.serveCSV(w, r, downloadName("income", id, "csv"), func(dst io.Writer) error {
			return exporter.NewCSVWriter(h.logger).WriteIncome(dst, result.Rows)
		})
	}
}

// uploadedFiles collects the "files" multipart parts, keeping upload order.
func (h *ProcessHandler) uploadedFiles(r *http.Request) ([]services.InputFile, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, apierrors.InvalidRequestWithError(fmt.Errorf("multipart form: %w", err))
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		return nil, apierrors.ErrValidation("files", "at least one file is required")
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) > h.maxFiles {
		return nil, apierrors.ErrValidation("files", fmt.Sprintf("at most %d files per batch", h.maxFiles))
	}

	files := make([]services.InputFile, 0, len(headers))
	for _, header := range headers {
		if err := validUploadName(header.Filename); err != nil {
			return nil, err
		}
		files = append(files, services.InputFile{
			Name: header.Filename,
			Size: header.Size,
			Open: openHeader(header),
		})
	}
	return files, nil
}

func openHeader(header *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return header.Open()
	}
}

func validUploadName(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls", ".csv":
		return nil
	default:
		return apierrors.ErrValidation("files", fmt.Sprintf("unsupported file type %q", filepath.Ext(name)))
	}
}

func (h *ProcessHandler) serveXLSX(w http.ResponseWriter, r *http.Request, name string, write func(io.Writer) error) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := write(w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream workbook",
			slog.String("file", name),
			slog.String("error", err.Error()))
	}
}

func (h *ProcessHandler) serveCSV(w http.ResponseWriter, r *http.Request, name string, write func(io.Writer) error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := write(w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream csv",
			slog.String("file", name),
			slog.String("error", err.Error()))
	}
}

func downloadName(kind string, id domain.MarketplaceID, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", id, kind, time.Now().Format("20060102_150405"), ext)
}

// validationError converts validator output into one APIError listing every
// failed field.
func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if stderrors.As(err, &fieldErrors) {
		details := make([]apierrors.ValidationError, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			details = append(details, apierrors.ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
		}
		return apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", details)
	}
	return apierrors.InvalidRequestWithError(err)
}
