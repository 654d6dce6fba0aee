package calculators

import (
	"github.com/powerguard/autonomy-planner/internal/autonomy"
)

const TopologyModel = "topology"

// Compile-time assertion that Topology implements the Calculator interface.
var _ autonomy.Calculator = (*Topology)(nil)

// Topology computes runtimes from the explicit wiring. Each source converts energy at the mean
// efficiency of the ports its devices use, and the global figure is the number of daily cycles the
// whole pool can sustain times the hours per day.
type Topology struct {
	chargeCounts bool
}

// TopologyOption configuration option for the calculator
type TopologyOption func(*Topology)

// WithChargeCounts toggles the per-connection charge count diagnostic.
func WithChargeCounts(enabled bool) TopologyOption {
	return func(t *Topology) {
		t.chargeCounts = enabled
	}
}

// NewTopology creates a Topology calculator with charge counts enabled.
func NewTopology(opts ...TopologyOption) *Topology {
	res := Topology{chargeCounts: true}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

func (c *Topology) Name() string { return TopologyModel }

func (c *Topology) Calculate(in autonomy.Input) autonomy.Result {
	res := autonomy.NewResult()
	p := newPlan(in)
	if p.empty() {
		return res
	}
	sc := in.Scenario

	var bankWh float64
	usable := make(map[string]float64, len(in.Sources))
	for _, s := range in.Sources {
		devices := p.bySource[s.ID]
		u := usableWh(s, sourceEfficiency(s, devices))
		usable[s.ID] = u
		bankWh += u

		res.RuntimePerSource[s.ID] = runtimeHours(u, loadW(devices, sc.IntensityMultiplier))
		if peak := peakW(devices); peak > s.MaxOutputW {
			res.Warnings = append(res.Warnings, overloadWarning(s, peak))
		}
	}

	var dailyWh float64
	for _, d := range p.connected {
		dailyWh += d.PowerW * sc.IntensityMultiplier * d.DailyHours(sc)
	}
	if dailyWh > 0 {
		cycles := (bankWh + p.storedWh()) / dailyWh
		res.TotalRuntimeHours = cycles * sc.HoursPerDay
	}

	if c.chargeCounts {
		for s, devices := range p.bySource {
			for _, d := range devices {
				if d.StoredWh() > 0 {
					res.ChargeCounts[d.ID] = chargeCount(usable[s], d.StoredWh())
				}
			}
		}
	}

	if anyPC(p.connected) && onlyPowerBanks(in.Sources) {
		res.Warnings = append(res.Warnings, warningPCOnPowerBanks)
	}
	res.Recommendations = recommendations(res.TotalRuntimeHours, bankWh, sc, len(in.Devices))
	return res
}

// sourceEfficiency is the mean port efficiency over the connected devices, or the blended
// default for an idle source.
func sourceEfficiency(s autonomy.PowerSource, devices []autonomy.Device) float64 {
	if len(devices) == 0 {
		return autonomy.BlendedEfficiency(s.Type)
	}
	var sum float64
	for _, d := range devices {
		sum += s.PortEfficiency(d.PreferredPort)
	}
	return sum / float64(len(devices))
}
