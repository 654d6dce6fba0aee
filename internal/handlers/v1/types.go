package v1

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/powerguard/autonomy-planner/internal/autonomy"
)

// Request forms.

type SourceForm struct {
	ID             string             `json:"id" validate:"required,instanceId,max=128"`
	CatalogID      string             `json:"catalogId,omitempty"`
	Brand          string             `json:"brand" validate:"max=100"`
	Model          string             `json:"model" validate:"max=100"`
	Type           string             `json:"type" validate:"required,sourceType"`
	CapacityWh     float64            `json:"capacityWh" validate:"gt=0"`
	CapacityMah    float64            `json:"capacityMah,omitempty" validate:"gte=0"`
	NominalVoltage float64            `json:"nominalVoltage,omitempty" validate:"gte=0"`
	MaxOutputW     float64            `json:"maxOutputW" validate:"gte=0"`
	HealthFactor   *float64           `json:"healthFactor,omitempty" validate:"omitempty,gt=0,lte=1"`
	Efficiency     map[string]float64 `json:"efficiency,omitempty" validate:"omitempty,dive,keys,portType,endkeys,gt=0,lte=1"`
}

type DeviceForm struct {
	ID            string   `json:"id" validate:"required,instanceId,max=128"`
	CatalogID     string   `json:"catalogId,omitempty"`
	Name          string   `json:"name" validate:"max=100"`
	Category      string   `json:"category,omitempty" validate:"max=100"`
	Type          string   `json:"type" validate:"required,deviceType"`
	PowerW        float64  `json:"powerW" validate:"gte=0"`
	RequiredW     float64  `json:"requiredW" validate:"gte=0"`
	BatteryWh     float64  `json:"batteryWh,omitempty" validate:"gte=0"`
	PreferredPort string   `json:"preferredPort" validate:"required,portType"`
	UsageHours    *float64 `json:"usageHours,omitempty" validate:"omitempty,gte=0,lte=24"`
}

type ScenarioForm struct {
	HoursPerDay         float64 `json:"hoursPerDay" validate:"gte=1,lte=24"`
	IntensityMultiplier float64 `json:"intensityMultiplier" validate:"gt=0"`
}

type ConnectionForm struct {
	SourceID string `json:"sourceId"`
	DeviceID string `json:"deviceId" validate:"required"`
}

type CalculationRequest struct {
	Model       string           `json:"model,omitempty"`
	Sources     []SourceForm     `json:"sources" validate:"dive"`
	Devices     []DeviceForm     `json:"devices" validate:"dive"`
	Scenario    *ScenarioForm    `json:"scenario,omitempty"`
	Connections []ConnectionForm `json:"connections,omitempty" validate:"dive"`
}

type WorkspaceForm struct {
	Name string `json:"name" validate:"max=100"`
}

type CustomPowerBankForm struct {
	Model       string  `json:"model" validate:"required,max=100"`
	CapacityMah float64 `json:"capacityMah" validate:"gt=0"`
	MaxOutputW  float64 `json:"maxOutputW,omitempty" validate:"gte=0"`
}

// AddSourceForm takes either a catalog id or a custom power bank.
type AddSourceForm struct {
	CatalogID string               `json:"catalogId,omitempty" validate:"required_without=Custom,excluded_with=Custom"`
	Custom    *CustomPowerBankForm `json:"custom,omitempty"`
}

type AddDeviceForm struct {
	CatalogID string `json:"catalogId" validate:"required"`
}

// DeviceUpdateForm sets the daily usage of a device; null clears it.
type DeviceUpdateForm struct {
	UsageHours *float64 `json:"usageHours" validate:"omitempty,gte=0,lte=24"`
}

// Replies.

type HealthReply struct {
	Status string `json:"status"`
}

func (h HealthReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ErrorReply struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func (e ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type CatalogSource struct {
	ID             string             `json:"id"`
	Brand          string             `json:"brand"`
	Model          string             `json:"model"`
	Type           string             `json:"type"`
	TypeLabel      string             `json:"typeLabel"`
	CapacityWh     float64            `json:"capacityWh"`
	CapacityMah    float64            `json:"capacityMah,omitempty"`
	NominalVoltage float64            `json:"nominalVoltage"`
	MaxOutputW     float64            `json:"maxOutputW"`
	HealthFactor   float64            `json:"healthFactor"`
	Efficiency     map[string]float64 `json:"efficiency"`
	Popular        bool               `json:"popular"`
}

type CatalogDevice struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Type          string  `json:"type"`
	TypeLabel     string  `json:"typeLabel"`
	PowerW        float64 `json:"powerW"`
	RequiredW     float64 `json:"requiredW"`
	BatteryWh     float64 `json:"batteryWh,omitempty"`
	PreferredPort string  `json:"preferredPort"`
	Popular       bool    `json:"popular"`
}

type WorkspaceReply struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
	Sources     []autonomy.PowerSource `json:"sources"`
	Devices     []autonomy.Device      `json:"devices"`
	Scenario    autonomy.Scenario      `json:"scenario"`
	Connections []autonomy.Connection  `json:"connections"`
}

type SummaryReply struct {
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Days    int    `json:"days"`
	Text    string `json:"text"`
}

// SourceRuntime carries a per-source runtime. RuntimeHours is null when Unlimited.
type SourceRuntime struct {
	SourceID     string   `json:"sourceId"`
	Label        string   `json:"label"`
	RuntimeHours *float64 `json:"runtimeHours"`
	Unlimited    bool     `json:"unlimited"`
}

type ConnectionStatusReply struct {
	SourceID     string   `json:"sourceId"`
	DeviceID     string   `json:"deviceId"`
	Status       string   `json:"status"`
	RuntimeHours *float64 `json:"runtimeHours"`
	Unlimited    bool     `json:"unlimited"`
	NeededHours  float64  `json:"neededHours"`
}

type CalculationReply struct {
	Model             string                  `json:"model"`
	TotalRuntimeHours float64                 `json:"totalRuntimeHours"`
	Summary           SummaryReply            `json:"summary"`
	Sources           []SourceRuntime         `json:"sources"`
	ChargeCounts      map[string]float64      `json:"chargeCounts"`
	Warnings          []string                `json:"warnings"`
	Recommendations   []string                `json:"recommendations"`
	Connections       []ConnectionStatusReply `json:"connections"`
}

type ModelsReply struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}
