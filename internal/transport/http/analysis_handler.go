package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/sofiaalage/product-sales-forecasting/internal/errors"
	"github.com/sofiaalage/product-sales-forecasting/internal/exporter"
	"github.com/sofiaalage/product-sales-forecasting/internal/infrastructure"
	"github.com/sofiaalage/product-sales-forecasting/internal/services"
	"github.com/sofiaalage/product-sales-forecasting/internal/workbook"
	"github.com/sofiaalage/product-sales-forecasting/pkg/contracts/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalysisService is the service interface the handler depends on.
type AnalysisService interface {
	Analyze(ctx context.Context, r io.Reader, opts services.Options) (*domain.AnalysisReport, error)
}

// AnalysisHandler handles workbook uploads and report downloads.
type AnalysisHandler struct {
	service        AnalysisService
	excel          *exporter.ExcelWriter
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	validate       *validator.Validate
	metrics        *infrastructure.Metrics
	maxUploadBytes int64
}

// NewAnalysisHandler creates the analysis handler. metrics may be nil.
func NewAnalysisHandler(service AnalysisService, excel *exporter.ExcelWriter, logger *slog.Logger, metrics *infrastructure.Metrics, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{
		service:        service,
		excel:          excel,
		logger:         logger,
		errorHandler:   apierrors.NewErrorHandler(logger, false),
		validate:       validator.New(),
		metrics:        metrics,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the analysis route tree.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Analyze)
	r.Post("/export", h.Export)
	return r
}

// Analyze accepts a multipart workbook upload and responds with the full
// report as JSON.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	rep, err := h.runAnalysis(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, rep)
}

// Export accepts the same upload and responds with the report workbook as an
// attachment.
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	rep, err := h.runAnalysis(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="stock-forecast-report.xlsx"`)
	if err := h.excel.Write(rep, w); err != nil {
		// Headers are already gone at this point; log and give up.
		h.logger.ErrorContext(r.Context(), "failed to stream report workbook",
			slog.String("error", err.Error()))
	}
}

func (h *AnalysisHandler) runAnalysis(w http.ResponseWriter, r *http.Request) (*domain.AnalysisReport, error) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apierrors.ErrFileTooLarge
		}
		return nil, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST",
			"Request is not a valid multipart upload", err.Error())
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, apierrors.ErrMissingFile
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, apierrors.ErrUnsupportedFile
	}

	opts, err := h.parseOptions(r)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "workbook upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size_bytes", header.Size))
	h.metrics.RecordUpload(ctx, header.Size)

	rep, err := h.service.Analyze(ctx, file, opts)
	if err != nil {
		if isWorkbookError(err) {
			return nil, apierrors.WorkbookError(err)
		}
		return nil, apierrors.AnalysisError(err)
	}
	return rep, nil
}

// parseOptions reads the optional form fields and validates their ranges.
func (h *AnalysisHandler) parseOptions(r *http.Request) (services.Options, error) {
	var opts services.Options

	fields := []struct {
		name   string
		target *int
	}{
		{"shelf_life_months", &opts.DefaultShelfLifeMonths},
		{"window_start_month", &opts.WindowStartMonth},
		{"window_end_month", &opts.WindowEndMonth},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(r.FormValue(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, apierrors.ErrValidation(f.name, "must be an integer")
		}
		*f.target = v
	}

	if err := h.validate.Struct(opts); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return opts, apierrors.ErrValidation(invalid[0].Field(), "value out of range")
		}
		return opts, apierrors.ErrValidation("options", err.Error())
	}
	return opts, nil
}

func isWorkbookError(err error) bool {
	return errors.Is(err, workbook.ErrSheetNotFound) ||
		errors.Is(err, workbook.ErrColumnNotFound) ||
		errors.Is(err, workbook.ErrEmptySheet) ||
		strings.Contains(err.Error(), "failed to open workbook")
}
