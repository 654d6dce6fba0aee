package calculators

import (
	"github.com/powerguard/autonomy-planner/internal/autonomy"
)

const AggregateModel = "aggregate"

// Compile-time assertion that Aggregate implements the Calculator interface.
var _ autonomy.Calculator = (*Aggregate)(nil)

// Aggregate ignores the wiring: every device draws from one shared pool converted at the blended
// efficiency of each source type.
type Aggregate struct{}

func NewAggregate() *Aggregate {
	return &Aggregate{}
}

func (c *Aggregate) Name() string { return AggregateModel }

func (c *Aggregate) Calculate(in autonomy.Input) autonomy.Result {
	res := autonomy.NewResult()
	p := newPlan(in)
	if p.empty() {
		return res
	}
	sc := in.Scenario

	drainW := loadW(in.Devices, sc.IntensityMultiplier)
	peak := peakW(in.Devices)

	var bankWh float64
	for _, s := range in.Sources {
		u := usableWh(s, autonomy.BlendedEfficiency(s.Type))
		bankWh += u
		res.RuntimePerSource[s.ID] = runtimeHours(u, drainW)
		if peak > s.MaxOutputW {
			res.Warnings = append(res.Warnings, overloadWarning(s, peak))
		}
	}

	if drainW > 0 {
		res.TotalRuntimeHours = (bankWh + p.storedWh()) / drainW
	}

	for _, d := range in.Devices {
		if d.StoredWh() > 0 {
			res.ChargeCounts[d.ID] = chargeCount(bankWh, d.StoredWh())
		}
	}

	if anyPC(in.Devices) && onlyPowerBanks(in.Sources) {
		res.Warnings = append(res.Warnings, warningPCOnPowerBanks)
	}
	res.Recommendations = recommendations(res.TotalRuntimeHours, bankWh, sc, len(in.Devices))
	return res
}
