package autonomy

import (
	"math"
	"strings"
)

const (
	// StationBlendedEfficiency is the conversion efficiency assumed for a station with no connected device.
	StationBlendedEfficiency = 0.88
	// DefaultBlendedEfficiency is the same assumption for every other source type.
	DefaultBlendedEfficiency = 0.85

	// HighPowerThresholdW is the average draw above which a device is treated as high-power.
	HighPowerThresholdW = 150.0

	DefaultHoursPerDay         = 8.0
	DefaultIntensityMultiplier = 1.0
)

// Intensity presets offered to users.
const (
	IntensityEco    = 0.5
	IntensityNormal = 1.0
	IntensityHigh   = 1.5
)

// Calculator turns an Input into a Result. Implementations must be pure.
type Calculator interface {
	// Name returns the model name, used as the key in Engine lookups.
	Name() string
	// Calculate runs the model. It never fails: degenerate inputs map to defined numbers.
	Calculate(in Input) Result
}

// PowerSource is one energy source placed in a plan.
type PowerSource struct {
	ID             string               `json:"id"`
	CatalogID      string               `json:"catalogId,omitempty"`
	Brand          string               `json:"brand"`
	Model          string               `json:"model"`
	Type           SourceType           `json:"type"`
	CapacityWh     float64              `json:"capacityWh"`
	CapacityMah    float64              `json:"capacityMah,omitempty"`
	NominalVoltage float64              `json:"nominalVoltage,omitempty"`
	MaxOutputW     float64              `json:"maxOutputW"`
	HealthFactor   float64              `json:"healthFactor"`
	Efficiency     map[PortType]float64 `json:"efficiency,omitempty"`
}

// Label is the brand and model joined by a space.
func (s PowerSource) Label() string {
	return strings.TrimSpace(s.Brand + " " + s.Model)
}

// PortEfficiency returns the conversion efficiency for the port, falling back to
// BlendedEfficiency for missing or out-of-range entries.
func (s PowerSource) PortEfficiency(p PortType) float64 {
	if e, ok := s.Efficiency[p]; ok && e > 0 && e <= 1 {
		return e
	}
	return BlendedEfficiency(s.Type)
}

// Health returns the health factor, treating an unset or out-of-range value as a new battery.
func (s PowerSource) Health() float64 {
	if s.HealthFactor <= 0 || s.HealthFactor > 1 {
		return 1
	}
	return s.HealthFactor
}

// BlendedEfficiency is the efficiency used when nothing is known about the ports in use.
func BlendedEfficiency(t SourceType) float64 {
	if t == SourceTypeStation {
		return StationBlendedEfficiency
	}
	return DefaultBlendedEfficiency
}

// DefaultPortEfficiencies returns a fresh copy of the catalog efficiency table for the source type.
func DefaultPortEfficiencies(t SourceType) map[PortType]float64 {
	if t == SourceTypeStation {
		return map[PortType]float64{
			PortUSBA:   0.90,
			PortUSBCPD: 0.94,
			PortDC12V:  0.95,
			PortAC220V: 0.87,
		}
	}
	return map[PortType]float64{
		PortUSBA:   0.85,
		PortUSBCPD: 0.90,
		PortDC12V:  0.88,
		PortAC220V: 0.78,
	}
}

// Device is one consumer placed in a plan.
type Device struct {
	ID            string     `json:"id"`
	CatalogID     string     `json:"catalogId,omitempty"`
	Name          string     `json:"name"`
	Category      string     `json:"category,omitempty"`
	Type          DeviceType `json:"type"`
	PowerW        float64    `json:"powerW"`
	RequiredW     float64    `json:"requiredW"`
	BatteryWh     float64    `json:"batteryWh,omitempty"`
	PreferredPort PortType   `json:"preferredPort"`
	UsageHours    *float64   `json:"usageHours,omitempty"`
}

var pcCategories = []string{"Комп'ютер", "Computer"}

// IsPCClass reports whether the device belongs to the desktop computer category.
func (d Device) IsPCClass() bool {
	for _, c := range pcCategories {
		if strings.EqualFold(d.Category, c) {
			return true
		}
	}
	return false
}

// IsHighPower reports whether the device should never be fed from a power bank.
func (d Device) IsHighPower() bool {
	return d.IsPCClass() || d.PowerW > HighPowerThresholdW
}

// DailyHours is the number of hours the device runs per day under sc.
func (d Device) DailyHours(sc Scenario) float64 {
	if d.UsageHours == nil {
		return sc.HoursPerDay
	}
	return math.Min(*d.UsageHours, sc.HoursPerDay)
}

// StoredWh is the energy held by the device battery, zero for constant loads.
func (d Device) StoredWh() float64 {
	if d.Type != DeviceTypeChargeable || d.BatteryWh < 0 {
		return 0
	}
	return d.BatteryWh
}

// Connection is a directed edge from a source to the device it feeds.
type Connection struct {
	SourceID string `json:"sourceId"`
	DeviceID string `json:"deviceId"`
}

// Scenario is the daily usage pattern.
type Scenario struct {
	HoursPerDay         float64 `json:"hoursPerDay"`
	IntensityMultiplier float64 `json:"intensityMultiplier"`
}

func DefaultScenario() Scenario {
	return Scenario{
		HoursPerDay:         DefaultHoursPerDay,
		IntensityMultiplier: DefaultIntensityMultiplier,
	}
}

// Input is everything a Calculator needs.
type Input struct {
	Sources     []PowerSource `json:"sources"`
	Devices     []Device      `json:"devices"`
	Scenario    Scenario      `json:"scenario"`
	Connections []Connection  `json:"connections,omitempty"`
}

// Result is the outcome of one calculation. RuntimePerSource values may be +Inf.
type Result struct {
	TotalRuntimeHours float64            `json:"totalRuntimeHours"`
	RuntimePerSource  map[string]float64 `json:"runtimePerSource"`
	ChargeCounts      map[string]float64 `json:"chargeCounts"`
	Warnings          []string           `json:"warnings"`
	Recommendations   []string           `json:"recommendations"`
}

// NewResult returns the zero result with allocated, empty collections.
func NewResult() Result {
	return Result{
		RuntimePerSource: make(map[string]float64),
		ChargeCounts:     make(map[string]float64),
		Warnings:         []string{},
		Recommendations:  []string{},
	}
}
