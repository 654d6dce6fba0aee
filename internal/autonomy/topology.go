package autonomy

import "sort"

// Topology is the set of source-to-device edges of a plan. A device has at most one source.
// The zero value is an empty topology ready to use.
type Topology struct {
	conns []Connection
}

// NewTopology builds a topology from edges. Later edges for the same device replace earlier ones
// and edges with an empty source or device id are dropped.
func NewTopology(conns ...Connection) *Topology {
	t := &Topology{}
	for _, c := range conns {
		t.Connect(c.SourceID, c.DeviceID)
	}
	return t
}

// Connect feeds deviceID from sourceID, replacing any existing edge of the device.
// An empty sourceID disconnects the device.
func (t *Topology) Connect(sourceID, deviceID string) {
	if deviceID == "" {
		return
	}
	t.Disconnect(deviceID)
	if sourceID == "" {
		return
	}
	t.conns = append(t.conns, Connection{SourceID: sourceID, DeviceID: deviceID})
}

// Disconnect removes the edge of deviceID, if any.
func (t *Topology) Disconnect(deviceID string) {
	t.filter(func(c Connection) bool { return c.DeviceID != deviceID })
}

// RemoveSource drops every edge leaving sourceID.
func (t *Topology) RemoveSource(sourceID string) {
	t.filter(func(c Connection) bool { return c.SourceID != sourceID })
}

// RemoveDevice drops the edge reaching deviceID.
func (t *Topology) RemoveDevice(deviceID string) {
	t.Disconnect(deviceID)
}

// Prune drops edges whose source or device is not part of the plan.
func (t *Topology) Prune(sources []PowerSource, devices []Device) {
	srcs := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		srcs[s.ID] = struct{}{}
	}
	devs := make(map[string]struct{}, len(devices))
	for _, d := range devices {
		devs[d.ID] = struct{}{}
	}
	t.filter(func(c Connection) bool {
		_, okS := srcs[c.SourceID]
		_, okD := devs[c.DeviceID]
		return okS && okD
	})
}

// SourceOf returns the source feeding deviceID.
func (t *Topology) SourceOf(deviceID string) (string, bool) {
	for _, c := range t.conns {
		if c.DeviceID == deviceID {
			return c.SourceID, true
		}
	}
	return "", false
}

// DevicesOf returns the ids of the devices fed by sourceID, in connection order.
func (t *Topology) DevicesOf(sourceID string) []string {
	var ids []string
	for _, c := range t.conns {
		if c.SourceID == sourceID {
			ids = append(ids, c.DeviceID)
		}
	}
	return ids
}

// Connections returns a copy of the edges.
func (t *Topology) Connections() []Connection {
	out := make([]Connection, len(t.conns))
	copy(out, t.conns)
	return out
}

func (t *Topology) Len() int { return len(t.conns) }

func (t *Topology) filter(keep func(Connection) bool) {
	kept := t.conns[:0]
	for _, c := range t.conns {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	t.conns = kept
}

// AutoConnectDevice picks a source for a newly added device: the first source in list order
// whose MaxOutputW covers the device peak, otherwise the first source. The edge is recorded in t.
// It returns false when there are no sources.
func AutoConnectDevice(t *Topology, sources []PowerSource, d Device) (string, bool) {
	if len(sources) == 0 {
		return "", false
	}
	target := sources[0].ID
	for _, s := range sources {
		if s.MaxOutputW >= d.RequiredW {
			target = s.ID
			break
		}
	}
	t.Connect(target, d.ID)
	return target, true
}

// AutoConnectSource connects every device that has no source yet to s and returns their ids.
func AutoConnectSource(t *Topology, s PowerSource, devices []Device) []string {
	var connected []string
	for _, d := range devices {
		if _, ok := t.SourceOf(d.ID); ok {
			continue
		}
		t.Connect(s.ID, d.ID)
		connected = append(connected, d.ID)
	}
	return connected
}

// Optimize builds a fresh topology greedily: devices in descending PowerW take the largest source
// that can carry their peak and is not a power bank feeding a high-power device. A device with no
// fitting source falls back to the largest source.
func Optimize(sources []PowerSource, devices []Device) *Topology {
	t := &Topology{}
	if len(sources) == 0 {
		return t
	}

	srcs := make([]PowerSource, len(sources))
	copy(srcs, sources)
	sort.SliceStable(srcs, func(i, j int) bool { return srcs[i].CapacityWh > srcs[j].CapacityWh })

	devs := make([]Device, len(devices))
	copy(devs, devices)
	sort.SliceStable(devs, func(i, j int) bool { return devs[i].PowerW > devs[j].PowerW })

	for _, d := range devs {
		target := srcs[0].ID
		for _, s := range srcs {
			if d.IsHighPower() && s.Type == SourceTypePowerBank {
				continue
			}
			if s.MaxOutputW >= d.RequiredW {
				target = s.ID
				break
			}
		}
		t.Connect(target, d.ID)
	}
	return t
}
