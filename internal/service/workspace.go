package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/powerguard/autonomy-planner/internal/autonomy"
	"github.com/powerguard/autonomy-planner/pkg/metrics"
	"go.uber.org/zap"
)

const (
	CustomBrand            = "Custom"
	CustomCatalogID        = "custom"
	CustomNominalVoltage   = 3.7
	DefaultCustomMaxOutput = 20.0
)

// Workspace is a snapshot of a working plan. Snapshots never share memory with the service.
type Workspace struct {
	ID          uuid.UUID
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Sources     []autonomy.PowerSource
	Devices     []autonomy.Device
	Scenario    autonomy.Scenario
	Connections []autonomy.Connection
}

// Input is the calculator input of the workspace.
func (w Workspace) Input() autonomy.Input {
	return autonomy.Input{
		Sources:     w.Sources,
		Devices:     w.Devices,
		Scenario:    w.Scenario,
		Connections: w.Connections,
	}
}

// CustomPowerBank describes a power bank that is not in the catalog.
type CustomPowerBank struct {
	Model       string
	CapacityMah float64
	// MaxOutputW defaults to DefaultCustomMaxOutput when zero.
	MaxOutputW float64
}

type workspace struct {
	id        uuid.UUID
	name      string
	createdAt time.Time
	updatedAt time.Time
	sources   []autonomy.PowerSource
	devices   []autonomy.Device
	scenario  autonomy.Scenario
	topology  *autonomy.Topology
	seq       int
}

func (w *workspace) nextID(prefix string) string {
	w.seq++
	return fmt.Sprintf("%s-%d", prefix, w.seq)
}

func (w *workspace) source(id string) (int, bool) {
	for i, s := range w.sources {
		if s.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (w *workspace) device(id string) (int, bool) {
	for i, d := range w.devices {
		if d.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (w *workspace) touch() {
	w.updatedAt = time.Now().UTC()
}

func (w *workspace) snapshot() Workspace {
	sources := make([]autonomy.PowerSource, len(w.sources))
	for i, s := range w.sources {
		sources[i] = s
		if s.Efficiency != nil {
			sources[i].Efficiency = make(map[autonomy.PortType]float64, len(s.Efficiency))
			for p, e := range s.Efficiency {
				sources[i].Efficiency[p] = e
			}
		}
	}
	devices := make([]autonomy.Device, len(w.devices))
	for i, d := range w.devices {
		devices[i] = d
		if d.UsageHours != nil {
			h := *d.UsageHours
			devices[i].UsageHours = &h
		}
	}
	return Workspace{
		ID:          w.id,
		Name:        w.name,
		CreatedAt:   w.createdAt,
		UpdatedAt:   w.updatedAt,
		Sources:     sources,
		Devices:     devices,
		Scenario:    w.scenario,
		Connections: w.topology.Connections(),
	}
}

// WorkspaceService keeps the working plans in memory. Workspaces do not survive a restart.
type WorkspaceService struct {
	mu         sync.RWMutex
	workspaces map[uuid.UUID]*workspace
	catalog    *CatalogService
	calc       *CalculationService
	logger     *zap.SugaredLogger
}

func NewWorkspaceService(catalog *CatalogService, calc *CalculationService) *WorkspaceService {
	return &WorkspaceService{
		workspaces: make(map[uuid.UUID]*workspace),
		catalog:    catalog,
		calc:       calc,
		logger:     zap.S().Named("workspace_service"),
	}
}

func (s *WorkspaceService) Create(ctx context.Context, name string) Workspace {
	now := time.Now().UTC()
	w := &workspace{
		id:        uuid.New(),
		name:      strings.TrimSpace(name),
		createdAt: now,
		updatedAt: now,
		sources:   []autonomy.PowerSource{},
		devices:   []autonomy.Device{},
		scenario:  autonomy.DefaultScenario(),
		topology:  autonomy.NewTopology(),
	}

	s.mu.Lock()
	s.workspaces[w.id] = w
	count := len(s.workspaces)
	s.mu.Unlock()

	metrics.UpdateWorkspacesActiveMetric(count)
	s.logger.Debugw("created workspace", "workspace_id", w.id, "name", w.name)
	return w.snapshot()
}

// List returns every workspace, oldest first.
func (s *WorkspaceService) List(ctx context.Context) []Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Workspace, 0, len(s.workspaces))
	for _, w := range s.workspaces {
		list = append(list, w.snapshot())
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID.String() < list[j].ID.String()
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (s *WorkspaceService) Get(ctx context.Context, id uuid.UUID) (Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workspaces[id]
	if !ok {
		return Workspace{}, NewErrWorkspaceNotFound(id)
	}
	return w.snapshot(), nil
}

func (s *WorkspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.workspaces[id]; !ok {
		s.mu.Unlock()
		return NewErrWorkspaceNotFound(id)
	}
	delete(s.workspaces, id)
	count := len(s.workspaces)
	s.mu.Unlock()

	metrics.UpdateWorkspacesActiveMetric(count)
	return nil
}

// AddSource places a catalog source in the workspace and connects it to every device without a source.
func (s *WorkspaceService) AddSource(ctx context.Context, id uuid.UUID, catalogID string) (autonomy.PowerSource, error) {
	spec, err := s.catalog.GetSource(ctx, catalogID)
	if err != nil {
		return autonomy.PowerSource{}, err
	}

	var src autonomy.PowerSource
	err = s.update(id, func(w *workspace) error {
		src, err = spec.ToPowerSource(w.nextID(spec.ID))
		if err != nil {
			return err
		}
		s.placeSource(w, src)
		return nil
	})
	return src, err
}

// AddCustomPowerBank places a power bank described only by its capacity in mAh.
func (s *WorkspaceService) AddCustomPowerBank(ctx context.Context, id uuid.UUID, pb CustomPowerBank) (autonomy.PowerSource, error) {
	name := strings.TrimSpace(pb.Model)
	if name == "" {
		return autonomy.PowerSource{}, NewErrInvalidInputf("custom power bank model is required")
	}
	if pb.CapacityMah <= 0 {
		return autonomy.PowerSource{}, NewErrInvalidInputf("custom power bank capacity must be positive")
	}
	if pb.MaxOutputW < 0 {
		return autonomy.PowerSource{}, NewErrInvalidInputf("custom power bank max output must not be negative")
	}
	maxOutput := pb.MaxOutputW
	if maxOutput == 0 {
		maxOutput = DefaultCustomMaxOutput
	}

	var src autonomy.PowerSource
	err := s.update(id, func(w *workspace) error {
		src = autonomy.PowerSource{
			ID:             w.nextID(CustomCatalogID),
			Brand:          CustomBrand,
			Model:          name,
			Type:           autonomy.SourceTypePowerBank,
			CapacityWh:     pb.CapacityMah * CustomNominalVoltage / 1000,
			CapacityMah:    pb.CapacityMah,
			NominalVoltage: CustomNominalVoltage,
			MaxOutputW:     maxOutput,
			HealthFactor:   1,
			Efficiency:     autonomy.DefaultPortEfficiencies(autonomy.SourceTypePowerBank),
		}
		s.placeSource(w, src)
		return nil
	})
	return src, err
}

func (s *WorkspaceService) placeSource(w *workspace, src autonomy.PowerSource) {
	w.sources = append(w.sources, src)
	connected := autonomy.AutoConnectSource(w.topology, src, w.devices)
	s.logger.Debugw("added source", "workspace_id", w.id, "source_id", src.ID, "connected_devices", len(connected))
}

// RemoveSource drops the source and every connection leaving it.
func (s *WorkspaceService) RemoveSource(ctx context.Context, id uuid.UUID, sourceID string) error {
	return s.update(id, func(w *workspace) error {
		i, ok := w.source(sourceID)
		if !ok {
			return NewErrSourceNotFound(sourceID)
		}
		w.sources = append(w.sources[:i], w.sources[i+1:]...)
		w.topology.RemoveSource(sourceID)
		return nil
	})
}

// AddDevice places a catalog device in the workspace and connects it to the first source able to carry its peak.
func (s *WorkspaceService) AddDevice(ctx context.Context, id uuid.UUID, catalogID string) (autonomy.Device, error) {
	spec, err := s.catalog.GetDevice(ctx, catalogID)
	if err != nil {
		return autonomy.Device{}, err
	}

	var dev autonomy.Device
	err = s.update(id, func(w *workspace) error {
		dev, err = spec.ToDevice(w.nextID(spec.ID))
		if err != nil {
			return err
		}
		w.devices = append(w.devices, dev)
		autonomy.AutoConnectDevice(w.topology, w.sources, dev)
		return nil
	})
	return dev, err
}

// RemoveDevice drops the device and its connection.
func (s *WorkspaceService) RemoveDevice(ctx context.Context, id uuid.UUID, deviceID string) error {
	return s.update(id, func(w *workspace) error {
		i, ok := w.device(deviceID)
		if !ok {
			return NewErrDeviceNotFound(deviceID)
		}
		w.devices = append(w.devices[:i], w.devices[i+1:]...)
		w.topology.RemoveDevice(deviceID)
		return nil
	})
}

// SetUsageHours sets the daily usage of a device. nil clears it so the device follows the scenario.
func (s *WorkspaceService) SetUsageHours(ctx context.Context, id uuid.UUID, deviceID string, hours *float64) (autonomy.Device, error) {
	if hours != nil && (*hours < 0 || *hours > autonomy.MaxHoursPerDay) {
		return autonomy.Device{}, NewErrInvalidInputf("usageHours must be between 0 and %g", autonomy.MaxHoursPerDay)
	}

	var dev autonomy.Device
	err := s.update(id, func(w *workspace) error {
		i, ok := w.device(deviceID)
		if !ok {
			return NewErrDeviceNotFound(deviceID)
		}
		if hours == nil {
			w.devices[i].UsageHours = nil
		} else {
			h := *hours
			w.devices[i].UsageHours = &h
		}
		dev = w.devices[i]
		return nil
	})
	return dev, err
}

// Connect feeds deviceID from sourceID. An empty sourceID disconnects the device.
func (s *WorkspaceService) Connect(ctx context.Context, id uuid.UUID, sourceID, deviceID string) error {
	return s.update(id, func(w *workspace) error {
		if _, ok := w.device(deviceID); !ok {
			return NewErrDeviceNotFound(deviceID)
		}
		if sourceID == "" {
			w.topology.Disconnect(deviceID)
			return nil
		}
		if _, ok := w.source(sourceID); !ok {
			return NewErrSourceNotFound(sourceID)
		}
		w.topology.Connect(sourceID, deviceID)
		return nil
	})
}

// Optimize replaces every connection with the greedy assignment.
func (s *WorkspaceService) Optimize(ctx context.Context, id uuid.UUID) (Workspace, error) {
	var snap Workspace
	err := s.update(id, func(w *workspace) error {
		w.topology = autonomy.Optimize(w.sources, w.devices)
		snap = w.snapshot()
		return nil
	})
	return snap, err
}

func (s *WorkspaceService) UpdateScenario(ctx context.Context, id uuid.UUID, sc autonomy.Scenario) (Workspace, error) {
	if err := sc.Validate(); err != nil {
		return Workspace{}, NewErrInvalidInput(err)
	}

	var snap Workspace
	err := s.update(id, func(w *workspace) error {
		w.scenario = sc
		snap = w.snapshot()
		return nil
	})
	return snap, err
}

// Calculate runs the workspace through modelName, or the configured model when empty.
func (s *WorkspaceService) Calculate(ctx context.Context, id uuid.UUID, modelName string) (*Calculation, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.calc.Calculate(ctx, w.Input(), modelName)
}

// update runs fn under the write lock and bumps the modification time when fn succeeds.
func (s *WorkspaceService) update(id uuid.UUID, fn func(w *workspace) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workspaces[id]
	if !ok {
		return NewErrWorkspaceNotFound(id)
	}
	if err := fn(w); err != nil {
		return err
	}
	w.touch()
	return nil
}
