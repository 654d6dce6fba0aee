package autonomy

import "fmt"

// MarginalThreshold is the share of the needed daily hours a connection must cover to be marginal.
const MarginalThreshold = 0.6

// ConnectionStatus is the health of one source-to-device edge.
type ConnectionStatus uint8

const (
	StatusSuccess ConnectionStatus = iota + 1
	StatusMarginal
	StatusInsufficient
	StatusError
)

var ConnectionStatuses = []ConnectionStatus{StatusSuccess, StatusMarginal, StatusInsufficient, StatusError}

func (s ConnectionStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusMarginal:
		return "marginal"
	case StatusInsufficient:
		return "insufficient"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

func (s ConnectionStatus) MarshalText() ([]byte, error) {
	if s < StatusSuccess || s > StatusError {
		return nil, fmt.Errorf("invalid connection status %d", s)
	}
	return []byte(s.String()), nil
}

// ConnectionReport is a classified edge.
type ConnectionReport struct {
	Connection
	Status       ConnectionStatus
	RuntimeHours float64
	NeededHours  float64
}

// ClassifyConnection rates the edge between src and d. peakW is the sum of RequiredW over every
// device fed by src and runtimeH is the runtime computed for src.
func ClassifyConnection(src PowerSource, d Device, peakW, runtimeH float64, sc Scenario) ConnectionStatus {
	if d.IsHighPower() && src.Type == SourceTypePowerBank {
		return StatusError
	}
	if peakW > src.MaxOutputW {
		return StatusError
	}
	needed := d.DailyHours(sc)
	switch {
	case runtimeH >= needed:
		return StatusSuccess
	case runtimeH >= needed*MarginalThreshold:
		return StatusMarginal
	default:
		return StatusInsufficient
	}
}

// ClassifyConnections rates every edge of in.Connections against res, in connection order.
// Edges pointing at unknown sources or devices are skipped.
func ClassifyConnections(in Input, res Result) []ConnectionReport {
	sources := make(map[string]PowerSource, len(in.Sources))
	for _, s := range in.Sources {
		sources[s.ID] = s
	}
	devices := make(map[string]Device, len(in.Devices))
	for _, d := range in.Devices {
		devices[d.ID] = d
	}

	topo := NewTopology(in.Connections...)
	peak := make(map[string]float64)
	for _, c := range topo.Connections() {
		if d, ok := devices[c.DeviceID]; ok {
			peak[c.SourceID] += d.RequiredW
		}
	}

	reports := make([]ConnectionReport, 0, topo.Len())
	for _, c := range topo.Connections() {
		src, okS := sources[c.SourceID]
		dev, okD := devices[c.DeviceID]
		if !okS || !okD {
			continue
		}
		runtime := res.RuntimePerSource[c.SourceID]
		reports = append(reports, ConnectionReport{
			Connection:   c,
			Status:       ClassifyConnection(src, dev, peak[c.SourceID], runtime, in.Scenario),
			RuntimeHours: runtime,
			NeededHours:  dev.DailyHours(in.Scenario),
		})
	}
	return reports
}
