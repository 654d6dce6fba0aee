package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
)

// SourceSpec is a catalog entry describing a power source model.
type SourceSpec struct {
	ID             string             `gorm:"primaryKey;type:TEXT;" json:"id"`
	Brand          string             `gorm:"not null" json:"brand"`
	Model          string             `gorm:"not null" json:"model"`
	Type           string             `gorm:"index;not null" json:"type"`
	CapacityWh     float64            `gorm:"not null" json:"capacityWh"`
	CapacityMah    float64            `json:"capacityMah,omitempty"`
	NominalVoltage float64            `json:"nominalVoltage"`
	MaxOutputW     float64            `gorm:"not null" json:"maxOutputW"`
	HealthFactor   float64            `json:"healthFactor"`
	Efficiency     map[string]float64 `gorm:"serializer:json;type:TEXT" json:"efficiency,omitempty"`
	Popular        bool               `json:"popular"`
	Position       int                `gorm:"not null;default:0" json:"-"`
	CreatedAt      time.Time          `json:"-"`
	UpdatedAt      time.Time          `json:"-"`
}

type SourceSpecList []SourceSpec

func (SourceSpec) TableName() string { return "source_specs" }

func (s SourceSpec) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}

// ToPowerSource turns the catalog entry into a plan instance carrying instanceID.
func (s SourceSpec) ToPowerSource(instanceID string) (autonomy.PowerSource, error) {
	t, err := autonomy.ParseSourceType(s.Type)
	if err != nil {
		return autonomy.PowerSource{}, fmt.Errorf("source spec %s: %w", s.ID, err)
	}

	efficiency := make(map[autonomy.PortType]float64, len(s.Efficiency))
	for port, e := range s.Efficiency {
		p, err := autonomy.ParsePortType(port)
		if err != nil {
			return autonomy.PowerSource{}, fmt.Errorf("source spec %s: %w", s.ID, err)
		}
		efficiency[p] = e
	}

	return autonomy.PowerSource{
		ID:             instanceID,
		CatalogID:      s.ID,
		Brand:          s.Brand,
		Model:          s.Model,
		Type:           t,
		CapacityWh:     s.CapacityWh,
		CapacityMah:    s.CapacityMah,
		NominalVoltage: s.NominalVoltage,
		MaxOutputW:     s.MaxOutputW,
		HealthFactor:   s.HealthFactor,
		Efficiency:     efficiency,
	}, nil
}

// EfficiencyTable converts a domain efficiency map into its stored form.
func EfficiencyTable(m map[autonomy.PortType]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for p, e := range m {
		out[p.String()] = e
	}
	return out
}
