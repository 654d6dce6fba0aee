package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
)

// DeviceSpec is a catalog entry describing a consumer.
type DeviceSpec struct {
	ID            string    `gorm:"primaryKey;type:TEXT;" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Category      string    `gorm:"index;not null" json:"category"`
	Type          string    `gorm:"not null" json:"type"`
	PowerW        float64   `gorm:"not null" json:"powerW"`
	RequiredW     float64   `gorm:"not null" json:"requiredW"`
	BatteryWh     float64   `json:"batteryWh,omitempty"`
	PreferredPort string    `gorm:"not null" json:"preferredPort"`
	Popular       bool      `json:"popular"`
	Position      int       `gorm:"not null;default:0" json:"-"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

type DeviceSpecList []DeviceSpec

func (DeviceSpec) TableName() string { return "device_specs" }

func (d DeviceSpec) String() string {
	val, _ := json.Marshal(d)
	return string(val)
}

func (d DeviceSpec) ToDevice(instanceID string) (autonomy.Device, error) {
	t, err := autonomy.ParseDeviceType(d.Type)
	if err != nil {
		return autonomy.Device{}, fmt.Errorf("device spec %s: %w", d.ID, err)
	}
	port, err := autonomy.ParsePortType(d.PreferredPort)
	if err != nil {
		return autonomy.Device{}, fmt.Errorf("device spec %s: %w", d.ID, err)
	}
	return autonomy.Device{
		ID:            instanceID,
		CatalogID:     d.ID,
		Name:          d.Name,
		Category:      d.Category,
		Type:          t,
		PowerW:        d.PowerW,
		RequiredW:     d.RequiredW,
		BatteryWh:     d.BatteryWh,
		PreferredPort: port,
	}, nil
}
