package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-editor/internal/dto"
	"github.com/noah-isme/sma-schedule-editor/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
	"github.com/noah-isme/sma-schedule-editor/pkg/export"
)

type scheduleViewer interface {
	View(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered timetable ready to download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a week's timetable for one class or teacher.
type ExportService struct {
	schedules scheduleViewer
	catalogs  catalogLoader
	csv       csvRenderer
	pdf       pdfRenderer
	xlsx      xlsxRenderer
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(schedules scheduleViewer, catalogs catalogLoader, validate *validator.Validate, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		schedules: schedules,
		catalogs:  catalogs,
		csv:       csv,
		pdf:       pdf,
		xlsx:      export.NewXLSXExporter(),
		validate:  validate,
		logger:    logger,
	}
}

// Export renders the grid of periods by weekdays for the requested class or teacher.
func (s *ExportService) Export(ctx context.Context, ec models.EditContext, query dto.ExportQuery) (*ExportResult, error) {
	if err := s.validate.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export query")
	}
	view, err := s.schedules.View(ctx, ec)
	if err != nil {
		return nil, err
	}
	catalog := models.Catalog{}
	if s.catalogs != nil {
		if loaded, err := s.catalogs.Load(ctx, ec.WorkspaceID); err == nil {
			catalog = loaded
		} else {
			s.logger.Warn("export without catalog names", zap.String("workspace", ec.WorkspaceID), zap.Error(err))
		}
	}

	dataset, subject := buildTimetable(view.Schedule.Lessons(), catalog, query)
	title := fmt.Sprintf("%s %s", subject, ec.WeekID)

	var payload []byte
	var contentType string
	switch query.Format {
	case "csv":
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case "pdf":
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	case "xlsx":
		payload, err = s.xlsx.Render(dataset, title)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		err = fmt.Errorf("unsupported format %s", query.Format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("%s_%s_%s.%s", sanitizeFilename(subject), ec.WeekID, time.Now().UTC().Format("20060102"), query.Format),
		ContentType: contentType,
		Data:        payload,
	}, nil
}

func buildTimetable(lessons []models.Lesson, catalog models.Catalog, query dto.ExportQuery) (export.Dataset, string) {
	byTeacher := query.ClassID == ""
	subject := catalog.ClassName(query.ClassID)
	if byTeacher {
		subject = catalog.TeacherName(query.TeacherID)
	}

	headers := []string{"Period"}
	for _, day := range models.Weekdays {
		headers = append(headers, dayLabel(day))
	}

	rows := make([]map[string]string, 0, models.MaxPeriod+1)
	for period := 0; period <= models.MaxPeriod; period++ {
		row := map[string]string{"Period": strconv.Itoa(period)}
		for _, day := range models.Weekdays {
			var cells []string
			for _, lesson := range lessons {
				if lesson.IsUnscheduled || lesson.Day != day || lesson.Period != period {
					continue
				}
				if byTeacher && lesson.TeacherID != query.TeacherID || !byTeacher && lesson.ClassID != query.ClassID {
					continue
				}
				cells = append(cells, cellLabel(lesson, catalog, byTeacher))
			}
			row[dayLabel(day)] = strings.Join(cells, " / ")
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}, subject
}

func cellLabel(lesson models.Lesson, catalog models.Catalog, byTeacher bool) string {
	who := catalog.TeacherName(lesson.TeacherID)
	if byTeacher {
		who = catalog.ClassName(lesson.ClassID)
	}
	label := fmt.Sprintf("%s (%s)", catalog.SubjectName(lesson.SubjectID), who)
	if lesson.Room != "" {
		label += " " + lesson.Room
	}
	return label
}

func dayLabel(day models.Weekday) string {
	raw := strings.ToLower(string(day))
	return strings.ToUpper(raw[:1]) + raw[1:]
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "timetable"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
