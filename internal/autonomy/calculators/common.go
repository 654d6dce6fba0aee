package calculators

import (
	"math"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
)

const (
	// ChargingEfficiency is the share of pool energy that ends up in a device battery.
	ChargingEfficiency = 0.85
	// LargePoolThresholdWh is the usable bank energy above which the DC router advice is given.
	LargePoolThresholdWh = 200.0
)

// plan indexes an Input for the calculators. Dangling and duplicate edges are resolved here.
type plan struct {
	in        autonomy.Input
	bySource  map[string][]autonomy.Device
	connected []autonomy.Device
}

func newPlan(in autonomy.Input) plan {
	p := plan{
		in:       in,
		bySource: make(map[string][]autonomy.Device),
	}

	topo := autonomy.NewTopology(in.Connections...)
	topo.Prune(in.Sources, in.Devices)
	for _, d := range in.Devices {
		src, ok := topo.SourceOf(d.ID)
		if !ok {
			continue
		}
		p.bySource[src] = append(p.bySource[src], d)
		p.connected = append(p.connected, d)
	}
	return p
}

func (p plan) empty() bool {
	return len(p.in.Sources) == 0 || len(p.in.Devices) == 0
}

// storedWh sums the batteries of every chargeable device, connected or not.
func (p plan) storedWh() float64 {
	var total float64
	for _, d := range p.in.Devices {
		total += d.StoredWh()
	}
	return total
}

func usableWh(s autonomy.PowerSource, efficiency float64) float64 {
	return s.CapacityWh * s.Health() * efficiency
}

func loadW(devices []autonomy.Device, intensity float64) float64 {
	var total float64
	for _, d := range devices {
		total += d.PowerW * intensity
	}
	return total
}

func peakW(devices []autonomy.Device) float64 {
	var total float64
	for _, d := range devices {
		total += d.RequiredW
	}
	return total
}

func runtimeHours(usable, load float64) float64 {
	if load <= 0 {
		return math.Inf(1)
	}
	return usable / load
}

// chargeCount is how many full charges of batteryWh the pool can deliver, truncated to one decimal.
func chargeCount(poolWh, batteryWh float64) float64 {
	cost := batteryWh / ChargingEfficiency
	return math.Floor(poolWh/cost*10) / 10
}
