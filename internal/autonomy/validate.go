package autonomy

import (
	"errors"
	"fmt"
)

const (
	MinHoursPerDay = 1.0
	MaxHoursPerDay = 24.0
)

// Validate checks the scenario bounds.
func (sc Scenario) Validate() error {
	if sc.HoursPerDay < MinHoursPerDay || sc.HoursPerDay > MaxHoursPerDay {
		return fmt.Errorf("hoursPerDay must be between %g and %g, got %g", MinHoursPerDay, MaxHoursPerDay, sc.HoursPerDay)
	}
	if sc.IntensityMultiplier <= 0 {
		return fmt.Errorf("intensityMultiplier must be positive, got %g", sc.IntensityMultiplier)
	}
	return nil
}

func (s PowerSource) Validate() error {
	if s.ID == "" {
		return errors.New("source id is required")
	}
	if !s.Type.Valid() {
		return fmt.Errorf("source %s: invalid type", s.ID)
	}
	if s.CapacityWh <= 0 {
		return fmt.Errorf("source %s: capacityWh must be positive", s.ID)
	}
	if s.HealthFactor <= 0 || s.HealthFactor > 1 {
		return fmt.Errorf("source %s: healthFactor must be in (0,1]", s.ID)
	}
	if s.MaxOutputW < 0 {
		return fmt.Errorf("source %s: maxOutputW must not be negative", s.ID)
	}
	for p, e := range s.Efficiency {
		if !p.Valid() {
			return fmt.Errorf("source %s: invalid port in efficiency table", s.ID)
		}
		if e <= 0 || e > 1 {
			return fmt.Errorf("source %s: efficiency for %s must be in (0,1]", s.ID, p)
		}
	}
	return nil
}

func (d Device) Validate() error {
	if d.ID == "" {
		return errors.New("device id is required")
	}
	if !d.Type.Valid() {
		return fmt.Errorf("device %s: invalid type", d.ID)
	}
	if !d.PreferredPort.Valid() {
		return fmt.Errorf("device %s: invalid preferred port", d.ID)
	}
	if d.PowerW < 0 {
		return fmt.Errorf("device %s: powerW must not be negative", d.ID)
	}
	if d.RequiredW < d.PowerW {
		return fmt.Errorf("device %s: requiredW must be at least powerW", d.ID)
	}
	if d.BatteryWh < 0 {
		return fmt.Errorf("device %s: batteryWh must not be negative", d.ID)
	}
	if d.UsageHours != nil && *d.UsageHours < 0 {
		return fmt.Errorf("device %s: usageHours must not be negative", d.ID)
	}
	return nil
}

// Validate checks every entity, id uniqueness and that connections only reference known ids.
// All problems are reported together.
func (in Input) Validate() error {
	var errs []error
	if err := in.Scenario.Validate(); err != nil {
		errs = append(errs, err)
	}

	sources := make(map[string]struct{}, len(in.Sources))
	for _, s := range in.Sources {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
		if _, dup := sources[s.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate source id %s", s.ID))
		}
		sources[s.ID] = struct{}{}
	}

	devices := make(map[string]struct{}, len(in.Devices))
	for _, d := range in.Devices {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
		if _, dup := devices[d.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate device id %s", d.ID))
		}
		devices[d.ID] = struct{}{}
	}

	for _, c := range in.Connections {
		if _, ok := sources[c.SourceID]; !ok {
			errs = append(errs, fmt.Errorf("connection references unknown source %q", c.SourceID))
		}
		if _, ok := devices[c.DeviceID]; !ok {
			errs = append(errs, fmt.Errorf("connection references unknown device %q", c.DeviceID))
		}
	}
	return errors.Join(errs...)
}

// ApplyDefaults fills the fields a hand-written plan usually omits: a zero health factor becomes 1
// and zero scenario values take the defaults.
func (in *Input) ApplyDefaults() {
	for i := range in.Sources {
		if in.Sources[i].HealthFactor == 0 {
			in.Sources[i].HealthFactor = 1
		}
	}
	if in.Scenario.HoursPerDay == 0 {
		in.Scenario.HoursPerDay = DefaultHoursPerDay
	}
	if in.Scenario.IntensityMultiplier == 0 {
		in.Scenario.IntensityMultiplier = DefaultIntensityMultiplier
	}
}
