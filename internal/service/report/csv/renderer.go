package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/powerguard/autonomy-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var csvRows [][]string

	csvRows = append(csvRows, []string{"POWERGUARD AUTONOMY REPORT"})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addSummary(csvRows, data)
	csvRows = r.addSources(csvRows, data.Sources)
	csvRows = r.addDevices(csvRows, data.Devices)
	csvRows = r.addConnections(csvRows, data.Connections)
	csvRows = r.addList(csvRows, "WARNINGS", "No warnings.", data.Warnings)
	csvRows = r.addList(csvRows, "RECOMMENDATIONS", "No recommendations.", data.Recommendations)

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addSummary(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"SUMMARY"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Metric", "Value"})

	csvRows = append(csvRows, []string{"Workspace", data.WorkspaceName})
	csvRows = append(csvRows, []string{"Workspace ID", data.WorkspaceID})
	csvRows = append(csvRows, []string{"Model", data.Model})
	csvRows = append(csvRows, []string{"Hours per day", formatFloat(data.Scenario.HoursPerDay)})
	csvRows = append(csvRows, []string{"Intensity", formatFloat(data.Scenario.IntensityMultiplier)})
	csvRows = append(csvRows, []string{"Total runtime (h)", fmt.Sprintf("%.2f", data.TotalRuntimeHours)})
	csvRows = append(csvRows, []string{"Total runtime", data.Summary.String()})
	csvRows = append(csvRows, []string{"Days covered", fmt.Sprintf("%d", data.Summary.Days)})
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addSources(csvRows [][]string, sources []types.SourceRow) [][]string {
	csvRows = append(csvRows, []string{"POWER SOURCES"})
	csvRows = append(csvRows, []string{""})
	if len(sources) == 0 {
		csvRows = append(csvRows, []string{"No power sources."})
		csvRows = append(csvRows, []string{""})
		return csvRows
	}
	csvRows = append(csvRows, []string{"ID", "Source", "Type", "Capacity (Wh)", "Max Output (W)", "Health", "Runtime (h)"})

	for _, s := range sources {
		csvRows = append(csvRows, []string{
			s.ID,
			s.Label,
			s.Type,
			formatFloat(s.CapacityWh),
			formatFloat(s.MaxOutputW),
			formatFloat(s.HealthFactor),
			formatRuntime(s.RuntimeHours, s.Unlimited)})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addDevices(csvRows [][]string, devices []types.DeviceRow) [][]string {
	csvRows = append(csvRows, []string{"DEVICES"})
	csvRows = append(csvRows, []string{""})
	if len(devices) == 0 {
		csvRows = append(csvRows, []string{"No devices."})
		csvRows = append(csvRows, []string{""})
		return csvRows
	}
	csvRows = append(csvRows, []string{"ID", "Device", "Category", "Type", "Power (W)", "Peak (W)", "Battery (Wh)", "Hours per day", "Source", "Charges"})

	for _, d := range devices {
		charges := ""
		if d.ChargeCount != nil {
			charges = fmt.Sprintf("%.1f", *d.ChargeCount)
		}
		csvRows = append(csvRows, []string{
			d.ID,
			d.Name,
			d.Category,
			d.Type,
			formatFloat(d.PowerW),
			formatFloat(d.RequiredW),
			formatFloat(d.BatteryWh),
			formatFloat(d.DailyHours),
			d.SourceID,
			charges})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addConnections(csvRows [][]string, conns []types.ConnectionRow) [][]string {
	csvRows = append(csvRows, []string{"CONNECTIONS"})
	csvRows = append(csvRows, []string{""})
	if len(conns) == 0 {
		csvRows = append(csvRows, []string{"No connections."})
		csvRows = append(csvRows, []string{""})
		return csvRows
	}
	csvRows = append(csvRows, []string{"Source", "Device", "Status", "Runtime (h)", "Needed (h)"})

	for _, c := range conns {
		csvRows = append(csvRows, []string{
			c.SourceLabel,
			c.DeviceName,
			c.Status,
			formatRuntime(c.RuntimeHours, c.Unlimited),
			formatFloat(c.NeededHours)})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addList(csvRows [][]string, title, empty string, items []string) [][]string {
	csvRows = append(csvRows, []string{title})
	csvRows = append(csvRows, []string{""})
	if len(items) == 0 {
		csvRows = append(csvRows, []string{empty})
	}
	for i, item := range items {
		csvRows = append(csvRows, []string{fmt.Sprintf("%d", i+1), item})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatRuntime(hours float64, unlimited bool) string {
	if unlimited {
		return "unlimited"
	}
	return formatFloat(hours)
}
