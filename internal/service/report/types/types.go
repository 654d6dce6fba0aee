package types

import "github.com/powerguard/autonomy-planner/internal/autonomy"

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
	ContentType() string
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
)

type ReportData struct {
	WorkspaceID       string
	WorkspaceName     string
	Model             string
	Scenario          autonomy.Scenario
	Summary           autonomy.Summary
	TotalRuntimeHours float64
	Sources           []SourceRow
	Devices           []DeviceRow
	Connections       []ConnectionRow
	Warnings          []string
	Recommendations   []string
	Timestamps        ReportTimestamps
}

type SourceRow struct {
	ID           string
	Label        string
	Type         string
	CapacityWh   float64
	MaxOutputW   float64
	HealthFactor float64
	RuntimeHours float64
	// Unlimited is set when nothing draws from the source.
	Unlimited bool
}

type DeviceRow struct {
	ID         string
	Name       string
	Category   string
	Type       string
	PowerW     float64
	RequiredW  float64
	BatteryWh  float64
	DailyHours float64
	SourceID   string
	// ChargeCount is nil for devices without a battery or a source.
	ChargeCount *float64
}

type ConnectionRow struct {
	SourceID     string
	SourceLabel  string
	DeviceID     string
	DeviceName   string
	Status       string
	RuntimeHours float64
	Unlimited    bool
	NeededHours  float64
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}
