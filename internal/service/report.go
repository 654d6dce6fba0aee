package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/powerguard/autonomy-planner/internal/service/report"
	"github.com/powerguard/autonomy-planner/internal/service/report/csv"
	"github.com/powerguard/autonomy-planner/internal/service/report/types"
	"github.com/powerguard/autonomy-planner/internal/service/report/xlsx"
)

type ReportRenderer = types.ReportRenderer
type ReportFormat = types.ReportFormat
type ReportData = types.ReportData

const (
	ReportFormatCSV  = types.ReportFormatCSV
	ReportFormatXLSX = types.ReportFormatXLSX
)

// Report is a rendered document ready to be served.
type Report struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ReportService struct {
	renderers map[types.ReportFormat]types.ReportRenderer
	now       func() time.Time
}

func NewReportService() *ReportService {
	service := &ReportService{
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
		now:       time.Now,
	}

	csvRenderer := csv.NewRenderer()
	xlsxRenderer := xlsx.NewRenderer()

	service.renderers[csvRenderer.SupportedFormat()] = csvRenderer
	service.renderers[xlsxRenderer.SupportedFormat()] = xlsxRenderer

	return service
}

// ParseReportFormat accepts a format name case-insensitively. An empty name means CSV.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(s)); f {
	case "":
		return ReportFormatCSV, nil
	case ReportFormatCSV, ReportFormatXLSX:
		return f, nil
	default:
		return "", NewErrInvalidInputf("unsupported report format %q", s)
	}
}

// GenerateReport renders the calculation of workspace w in the requested format.
func (r *ReportService) GenerateReport(w Workspace, calc *Calculation, format ReportFormat) (*Report, error) {
	renderer, exists := r.renderers[format]
	if !exists {
		return nil, NewErrInvalidInputf("unsupported report format %q", format)
	}

	data := report.BuildReportData(
		report.Subject{ID: w.ID.String(), Name: w.Name, Model: calc.Model},
		calc.Input, calc.Result, calc.Connections, r.now().UTC(),
	)
	content, err := renderer.Render(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}

	return &Report{
		Filename:    fmt.Sprintf("powerguard-%s.%s", w.ID, format),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}
