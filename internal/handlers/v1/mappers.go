package v1

import (
	"fmt"
	"math"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
	"github.com/powerguard/autonomy-planner/internal/service"
	"github.com/powerguard/autonomy-planner/internal/store/model"
)

func (f SourceForm) toPowerSource() (autonomy.PowerSource, error) {
	t, err := autonomy.ParseSourceType(f.Type)
	if err != nil {
		return autonomy.PowerSource{}, err
	}

	health := 1.0
	if f.HealthFactor != nil {
		health = *f.HealthFactor
	}

	efficiency := autonomy.DefaultPortEfficiencies(t)
	if len(f.Efficiency) > 0 {
		efficiency = make(map[autonomy.PortType]float64, len(f.Efficiency))
		for port, e := range f.Efficiency {
			p, err := autonomy.ParsePortType(port)
			if err != nil {
				return autonomy.PowerSource{}, fmt.Errorf("source %s: %w", f.ID, err)
			}
			efficiency[p] = e
		}
	}

	return autonomy.PowerSource{
		ID:             f.ID,
		CatalogID:      f.CatalogID,
		Brand:          f.Brand,
		Model:          f.Model,
		Type:           t,
		CapacityWh:     f.CapacityWh,
		CapacityMah:    f.CapacityMah,
		NominalVoltage: f.NominalVoltage,
		MaxOutputW:     f.MaxOutputW,
		HealthFactor:   health,
		Efficiency:     efficiency,
	}, nil
}

func (f DeviceForm) toDevice() (autonomy.Device, error) {
	t, err := autonomy.ParseDeviceType(f.Type)
	if err != nil {
		return autonomy.Device{}, err
	}
	port, err := autonomy.ParsePortType(f.PreferredPort)
	if err != nil {
		return autonomy.Device{}, err
	}
	required := f.RequiredW
	if required == 0 {
		required = f.PowerW
	}
	return autonomy.Device{
		ID:            f.ID,
		CatalogID:     f.CatalogID,
		Name:          f.Name,
		Category:      f.Category,
		Type:          t,
		PowerW:        f.PowerW,
		RequiredW:     required,
		BatteryWh:     f.BatteryWh,
		PreferredPort: port,
		UsageHours:    f.UsageHours,
	}, nil
}

func (f ScenarioForm) toScenario() autonomy.Scenario {
	return autonomy.Scenario{HoursPerDay: f.HoursPerDay, IntensityMultiplier: f.IntensityMultiplier}
}

// InputFromRequest turns a stateless calculation request into calculator input. A missing scenario
// is the default one.
func InputFromRequest(req CalculationRequest) (autonomy.Input, error) {
	in := autonomy.Input{
		Sources:     make([]autonomy.PowerSource, 0, len(req.Sources)),
		Devices:     make([]autonomy.Device, 0, len(req.Devices)),
		Scenario:    autonomy.DefaultScenario(),
		Connections: make([]autonomy.Connection, 0, len(req.Connections)),
	}
	for _, f := range req.Sources {
		s, err := f.toPowerSource()
		if err != nil {
			return autonomy.Input{}, err
		}
		in.Sources = append(in.Sources, s)
	}
	for _, f := range req.Devices {
		d, err := f.toDevice()
		if err != nil {
			return autonomy.Input{}, err
		}
		in.Devices = append(in.Devices, d)
	}
	if req.Scenario != nil {
		in.Scenario = req.Scenario.toScenario()
	}
	for _, c := range req.Connections {
		in.Connections = append(in.Connections, autonomy.Connection{SourceID: c.SourceID, DeviceID: c.DeviceID})
	}
	return in, nil
}

func CatalogSourceToApi(s model.SourceSpec) CatalogSource {
	label := s.Type
	if t, err := autonomy.ParseSourceType(s.Type); err == nil {
		label = t.Label()
	}
	return CatalogSource{
		ID:             s.ID,
		Brand:          s.Brand,
		Model:          s.Model,
		Type:           s.Type,
		TypeLabel:      label,
		CapacityWh:     s.CapacityWh,
		CapacityMah:    s.CapacityMah,
		NominalVoltage: s.NominalVoltage,
		MaxOutputW:     s.MaxOutputW,
		HealthFactor:   s.HealthFactor,
		Efficiency:     s.Efficiency,
		Popular:        s.Popular,
	}
}

func CatalogSourceListToApi(specs []model.SourceSpec) []CatalogSource {
	list := make([]CatalogSource, 0, len(specs))
	for _, s := range specs {
		list = append(list, CatalogSourceToApi(s))
	}
	return list
}

func CatalogDeviceToApi(d model.DeviceSpec) CatalogDevice {
	label := d.Type
	if t, err := autonomy.ParseDeviceType(d.Type); err == nil {
		label = t.Label()
	}
	return CatalogDevice{
		ID:            d.ID,
		Name:          d.Name,
		Category:      d.Category,
		Type:          d.Type,
		TypeLabel:     label,
		PowerW:        d.PowerW,
		RequiredW:     d.RequiredW,
		BatteryWh:     d.BatteryWh,
		PreferredPort: d.PreferredPort,
		Popular:       d.Popular,
	}
}

func CatalogDeviceListToApi(specs []model.DeviceSpec) []CatalogDevice {
	list := make([]CatalogDevice, 0, len(specs))
	for _, d := range specs {
		list = append(list, CatalogDeviceToApi(d))
	}
	return list
}

func WorkspaceToApi(w service.Workspace) WorkspaceReply {
	return WorkspaceReply{
		ID:          w.ID,
		Name:        w.Name,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		Sources:     nonNil(w.Sources),
		Devices:     nonNil(w.Devices),
		Scenario:    w.Scenario,
		Connections: nonNil(w.Connections),
	}
}

func WorkspaceListToApi(list []service.Workspace) []WorkspaceReply {
	out := make([]WorkspaceReply, 0, len(list))
	for _, w := range list {
		out = append(out, WorkspaceToApi(w))
	}
	return out
}

func CalculationToApi(c *service.Calculation) CalculationReply {
	reply := CalculationReply{
		Model:             c.Model,
		TotalRuntimeHours: c.Result.TotalRuntimeHours,
		Summary: SummaryReply{
			Hours:   c.Summary.Hours,
			Minutes: c.Summary.Minutes,
			Days:    c.Summary.Days,
			Text:    c.Summary.String(),
		},
		Sources:         make([]SourceRuntime, 0, len(c.Input.Sources)),
		ChargeCounts:    c.Result.ChargeCounts,
		Warnings:        nonNil(c.Result.Warnings),
		Recommendations: nonNil(c.Result.Recommendations),
		Connections:     make([]ConnectionStatusReply, 0, len(c.Connections)),
	}
	if reply.ChargeCounts == nil {
		reply.ChargeCounts = map[string]float64{}
	}

	for _, s := range c.Input.Sources {
		runtime, unlimited := runtimeToApi(c.Result.RuntimePerSource[s.ID])
		reply.Sources = append(reply.Sources, SourceRuntime{
			SourceID:     s.ID,
			Label:        s.Label(),
			RuntimeHours: runtime,
			Unlimited:    unlimited,
		})
	}
	for _, r := range c.Connections {
		runtime, unlimited := runtimeToApi(r.RuntimeHours)
		reply.Connections = append(reply.Connections, ConnectionStatusReply{
			SourceID:     r.SourceID,
			DeviceID:     r.DeviceID,
			Status:       r.Status.String(),
			RuntimeHours: runtime,
			Unlimited:    unlimited,
			NeededHours:  r.NeededHours,
		})
	}
	return reply
}

// runtimeToApi maps +Inf, which JSON cannot carry, to null plus the unlimited flag.
func runtimeToApi(hours float64) (*float64, bool) {
	if math.IsInf(hours, 1) {
		return nil, true
	}
	return &hours, false
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
