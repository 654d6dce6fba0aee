package xlsx

import (
	"bytes"
	"fmt"

	"github.com/powerguard/autonomy-planner/internal/service/report/types"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary     = "Summary"
	SheetSources     = "Sources"
	SheetDevices     = "Devices"
	SheetConnections = "Connections"
	SheetAdvice      = "Advice"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type sheet struct {
	name    string
	headers []any
	rows    [][]any
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range r.sheets(data) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) sheets(data *types.ReportData) []sheet {
	summary := sheet{
		name:    SheetSummary,
		headers: []any{"Metric", "Value"},
		rows: [][]any{
			{"Generated", data.Timestamps.Generated + " " + data.Timestamps.GeneratedTime},
			{"Workspace", data.WorkspaceName},
			{"Workspace ID", data.WorkspaceID},
			{"Model", data.Model},
			{"Hours per day", data.Scenario.HoursPerDay},
			{"Intensity", data.Scenario.IntensityMultiplier},
			{"Total runtime (h)", data.TotalRuntimeHours},
			{"Total runtime", data.Summary.String()},
			{"Days covered", data.Summary.Days},
		},
	}

	sources := sheet{
		name:    SheetSources,
		headers: []any{"ID", "Source", "Type", "Capacity (Wh)", "Max Output (W)", "Health", "Runtime (h)"},
	}
	for _, s := range data.Sources {
		sources.rows = append(sources.rows, []any{
			s.ID, s.Label, s.Type, s.CapacityWh, s.MaxOutputW, s.HealthFactor, runtimeCell(s.RuntimeHours, s.Unlimited),
		})
	}

	devices := sheet{
		name:    SheetDevices,
		headers: []any{"ID", "Device", "Category", "Type", "Power (W)", "Peak (W)", "Battery (Wh)", "Hours per day", "Source", "Charges"},
	}
	for _, d := range data.Devices {
		var charges any = ""
		if d.ChargeCount != nil {
			charges = *d.ChargeCount
		}
		devices.rows = append(devices.rows, []any{
			d.ID, d.Name, d.Category, d.Type, d.PowerW, d.RequiredW, d.BatteryWh, d.DailyHours, d.SourceID, charges,
		})
	}

	conns := sheet{
		name:    SheetConnections,
		headers: []any{"Source", "Device", "Status", "Runtime (h)", "Needed (h)"},
	}
	for _, c := range data.Connections {
		conns.rows = append(conns.rows, []any{
			c.SourceLabel, c.DeviceName, c.Status, runtimeCell(c.RuntimeHours, c.Unlimited), c.NeededHours,
		})
	}

	advice := sheet{
		name:    SheetAdvice,
		headers: []any{"Kind", "Message"},
	}
	for _, w := range data.Warnings {
		advice.rows = append(advice.rows, []any{"warning", w})
	}
	for _, rec := range data.Recommendations {
		advice.rows = append(advice.rows, []any{"recommendation", rec})
	}

	return []sheet{summary, sources, devices, conns, advice}
}

func runtimeCell(hours float64, unlimited bool) any {
	if unlimited {
		return "unlimited"
	}
	return hours
}
