package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/repository"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/validator"
)

// MaxImportRows bounds the number of businesses in one upload.
const MaxImportRows = 1000

// ImportFormat is the encoding of a bulk upload.
type ImportFormat string

// Supported upload formats.
const (
	FormatJSON ImportFormat = "json"
	FormatYAML ImportFormat = "yaml"
	FormatCSV  ImportFormat = "csv"
)

// ImportedBusiness is a row that was created.
type ImportedBusiness struct {
	Row  int    `json:"row"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ImportFailure is a row that could not be created.
type ImportFailure struct {
	Row    int               `json:"row"`
	Name   string            `json:"name,omitempty"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ImportResult reports the outcome of every row of an upload.
type ImportResult struct {
	Created []ImportedBusiness `json:"created"`
	Failed  []ImportFailure    `json:"failed"`
}

// BulkImportService creates businesses from an uploaded file.
type BulkImportService struct {
	businesses repository.BusinessRepository
	cache      repository.ListingCache
	events     EventPublisher
	logger     *slog.Logger
}

// NewBulkImportService creates a new bulk import service. cache and events
// may be nil.
func NewBulkImportService(
	businesses repository.BusinessRepository,
	cache repository.ListingCache,
	events EventPublisher,
	logger *slog.Logger,
) *BulkImportService {
	return &BulkImportService{
		businesses: businesses,
		cache:      cache,
		events:     events,
		logger:     logger,
	}
}

// Import creates every valid row. Rows that fail validation or are refused
// by the content API are reported and skipped; an unavailable content API
// or a canceled request stops the upload.
func (s *BulkImportService) Import(ctx context.Context, rows []domain.BusinessImport, importedBy string) (*ImportResult, error) {
	result := &ImportResult{Created: []ImportedBusiness{}, Failed: []ImportFailure{}}

	for i, row := range rows {
		n := i + 1
		if err := validator.Validate(row); err != nil {
			failure := ImportFailure{Row: n, Name: row.Name, Error: "validation failed"}
			var valErr *validator.ValidationError
			if errors.As(err, &valErr) {
				failure.Fields = valErr.Fields()
			}
			result.Failed = append(result.Failed, failure)
			continue
		}

		id, err := s.businesses.Create(ctx, row)
		if err != nil {
			if stopsImport(ctx, err) {
				s.finish(ctx, result, importedBy)
				return result, fmt.Errorf("import row %d: %w", n, err)
			}
			s.logger.WarnContext(ctx, "bulk import row rejected",
				slog.Int("row", n),
				slog.String("name", row.Name),
				slog.String("error", err.Error()),
			)
			result.Failed = append(result.Failed, ImportFailure{Row: n, Name: row.Name, Error: publicMessage(err)})
			continue
		}

		result.Created = append(result.Created, ImportedBusiness{Row: n, ID: id, Name: row.Name})
		if s.events != nil {
			if err := s.events.PublishBusinessImported(ctx, id, row.Name, importedBy); err != nil {
				s.logger.ErrorContext(ctx, "failed to publish business.imported event",
					slog.String("business_id", id),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	s.finish(ctx, result, importedBy)
	return result, nil
}

func (s *BulkImportService) finish(ctx context.Context, result *ImportResult, importedBy string) {
	if len(result.Created) > 0 && s.cache != nil {
		if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "listing cache invalidation failed", slog.String("error", err.Error()))
		}
	}
	s.logger.InfoContext(ctx, "bulk import finished",
		slog.Int("created", len(result.Created)),
		slog.Int("failed", len(result.Failed)),
		slog.String("imported_by", importedBy),
	)
}

func stopsImport(ctx context.Context, err error) bool {
	return ctx.Err() != nil || apperrors.HTTPStatus(err) == http.StatusServiceUnavailable
}

func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "could not be created"
}
