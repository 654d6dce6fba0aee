package report

import (
	"math"
	"time"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
	"github.com/powerguard/autonomy-planner/internal/service/report/types"
)

// Subject identifies what a report is about.
type Subject struct {
	ID    string
	Name  string
	Model string
}

// BuildReportData flattens a calculation into the rows every renderer consumes.
func BuildReportData(subject Subject, in autonomy.Input, res autonomy.Result, reports []autonomy.ConnectionReport, now time.Time) *types.ReportData {
	data := &types.ReportData{
		WorkspaceID:       subject.ID,
		WorkspaceName:     subject.Name,
		Model:             subject.Model,
		Scenario:          in.Scenario,
		Summary:           autonomy.Summarize(res, in.Scenario),
		TotalRuntimeHours: res.TotalRuntimeHours,
		Warnings:          res.Warnings,
		Recommendations:   res.Recommendations,
		Timestamps: types.ReportTimestamps{
			Generated:     now.Format("January 2, 2006"),
			GeneratedTime: now.Format("15:04:05"),
		},
	}

	labels := make(map[string]string, len(in.Sources))
	for _, s := range in.Sources {
		labels[s.ID] = s.Label()
		runtime, unlimited := finite(res.RuntimePerSource[s.ID])
		data.Sources = append(data.Sources, types.SourceRow{
			ID:           s.ID,
			Label:        s.Label(),
			Type:         s.Type.String(),
			CapacityWh:   s.CapacityWh,
			MaxOutputW:   s.MaxOutputW,
			HealthFactor: s.Health(),
			RuntimeHours: runtime,
			Unlimited:    unlimited,
		})
	}

	topo := autonomy.NewTopology(in.Connections...)
	names := make(map[string]string, len(in.Devices))
	for _, d := range in.Devices {
		names[d.ID] = d.Name
		row := types.DeviceRow{
			ID:         d.ID,
			Name:       d.Name,
			Category:   d.Category,
			Type:       d.Type.String(),
			PowerW:     d.PowerW,
			RequiredW:  d.RequiredW,
			BatteryWh:  d.BatteryWh,
			DailyHours: d.DailyHours(in.Scenario),
		}
		if src, ok := topo.SourceOf(d.ID); ok {
			row.SourceID = src
		}
		if c, ok := res.ChargeCounts[d.ID]; ok {
			count := c
			row.ChargeCount = &count
		}
		data.Devices = append(data.Devices, row)
	}

	for _, r := range reports {
		runtime, unlimited := finite(r.RuntimeHours)
		data.Connections = append(data.Connections, types.ConnectionRow{
			SourceID:     r.SourceID,
			SourceLabel:  labels[r.SourceID],
			DeviceID:     r.DeviceID,
			DeviceName:   names[r.DeviceID],
			Status:       r.Status.String(),
			RuntimeHours: runtime,
			Unlimited:    unlimited,
			NeededHours:  r.NeededHours,
		})
	}
	return data
}

func finite(v float64) (float64, bool) {
	if math.IsInf(v, 1) {
		return 0, true
	}
	return v, false
}
