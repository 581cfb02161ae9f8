package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/edusphere/timetable-api/internal/dto"
	appErrors "github.com/edusphere/timetable-api/pkg/errors"
	"github.com/edusphere/timetable-api/pkg/export"
)

type draftFetcher interface {
	GetDraft(ctx context.Context, userID string) (*dto.DraftResponse, error)
}

// ExportService renders a user's draft timetable as a downloadable file.
type ExportService struct {
	drafts draftFetcher
	pdf    *export.PDFExporter
	csv    *export.CSVExporter
	title  string
	logger *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(drafts draftFetcher, title string, logger *zap.Logger) *ExportService {
	if title == "" {
		title = "Weekly Timetable"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		drafts: drafts,
		pdf:    export.NewPDFExporter(),
		csv:    export.NewCSVExporter(),
		title:  title,
		logger: logger,
	}
}

var exportHeaders = []string{"Day", "Start", "End", "Lesson", "Teacher", "Class", "Room"}

// RenderDraft returns the rendered document and its content type.
func (s *ExportService) RenderDraft(ctx context.Context, userID, format string) ([]byte, string, error) {
	draft, err := s.drafts.GetDraft(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{Headers: exportHeaders}
	for _, slot := range draft.Lessons {
		room := ""
		if slot.ClassroomID != nil {
			room = strconv.FormatInt(*slot.ClassroomID, 10)
		}
		data.Rows = append(data.Rows, map[string]string{
			"Day":     slot.Day,
			"Start":   slot.StartTime.Format("15:04"),
			"End":     slot.EndTime.Format("15:04"),
			"Lesson":  slot.Name,
			"Teacher": strconv.FormatInt(slot.TeacherID, 10),
			"Class":   strconv.FormatInt(slot.ClassID, 10),
			"Room":    room,
		})
	}

	switch format {
	case "csv":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case "", "pdf":
		payload, err := s.pdf.Render(data, s.title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
