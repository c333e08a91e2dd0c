package http

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/service"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httputil"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/middleware"
)

// maxUploadBytes bounds a bulk upload.
const maxUploadBytes = 10 << 20

// BulkContentTypes are the media types accepted by the bulk upload.
var BulkContentTypes = []string{"application/json", "application/yaml", "application/x-yaml", "text/yaml", "text/csv"}

// BulkHandler handles admin bulk uploads of businesses.
type BulkHandler struct {
	service *service.BulkImportService
	logger  *slog.Logger
}

// NewBulkHandler creates a new bulk upload HTTP handler.
func NewBulkHandler(svc *service.BulkImportService, logger *slog.Logger) *BulkHandler {
	return &BulkHandler{service: svc, logger: logger}
}

// Import handles POST /api/v1/admin/businesses/bulk
func (h *BulkHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, r, apperrors.InvalidInput(fmt.Sprintf("upload exceeds %d bytes", maxUploadBytes)), h.logger)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	rows, err := service.Decode(data, uploadFormat(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.Import(r.Context(), rows, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	status := http.StatusCreated
	if len(result.Created) == 0 {
		status = http.StatusUnprocessableEntity
	}
	httputil.WriteData(w, status, result)
}

// Template handles GET /api/v1/admin/businesses/template.csv
func (h *BulkHandler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="businesses_template.csv"`)
	cw := csv.NewWriter(w)
	if err := cw.Write(service.ImportColumns()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write csv template", slog.String("error", err.Error()))
		return
	}
	cw.Flush()
}

func uploadFormat(r *http.Request) service.ImportFormat {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case err != nil:
		return service.FormatJSON
	case strings.HasSuffix(mediaType, "yaml"):
		return service.FormatYAML
	case mediaType == "text/csv":
		return service.FormatCSV
	default:
		return service.FormatJSON
	}
}
