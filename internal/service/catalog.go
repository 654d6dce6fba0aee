package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
	"github.com/powerguard/autonomy-planner/internal/store"
	"github.com/powerguard/autonomy-planner/internal/store/model"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

// SourceGroup is the coarse filter offered over source types.
type SourceGroup string

const (
	SourceGroupAll        SourceGroup = "all"
	SourceGroupPowerBank  SourceGroup = "powerbank"
	SourceGroupStation    SourceGroup = "station"
	SourceGroupBatteryUPS SourceGroup = "battery_ups"
)

var SourceGroups = []SourceGroup{SourceGroupAll, SourceGroupPowerBank, SourceGroupStation, SourceGroupBatteryUPS}

// ParseSourceGroup accepts a group name case-insensitively. An empty name means all.
func ParseSourceGroup(s string) (SourceGroup, error) {
	if s == "" {
		return SourceGroupAll, nil
	}
	g := SourceGroup(strings.ToLower(s))
	if !funk.Contains(SourceGroups, g) {
		return "", NewErrInvalidInputf("unknown source group %q", s)
	}
	return g, nil
}

// Types returns the source types of the group; nil for all.
func (g SourceGroup) Types() []autonomy.SourceType {
	switch g {
	case SourceGroupPowerBank:
		return []autonomy.SourceType{autonomy.SourceTypePowerBank}
	case SourceGroupStation:
		return []autonomy.SourceType{autonomy.SourceTypeStation}
	case SourceGroupBatteryUPS:
		return []autonomy.SourceType{autonomy.SourceTypeUPS, autonomy.SourceTypeBattery}
	default:
		return nil
	}
}

// CatalogService reads the reference catalog of sources and devices.
type CatalogService struct {
	store  store.Store
	logger *zap.SugaredLogger
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{
		store:  s,
		logger: zap.S().Named("catalog_service"),
	}
}

func (c *CatalogService) ListSources(ctx context.Context, group SourceGroup, query string) (model.SourceSpecList, error) {
	types := funk.Map(group.Types(), func(t autonomy.SourceType) string { return t.String() }).([]string)

	sources, err := c.store.SourceSpec().List(ctx, store.NewSourceSpecQueryFilter().ByTypes(types...))
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog sources: %w", err)
	}

	q := normalizeQuery(query)
	if q == "" {
		return sources, nil
	}
	filtered := funk.Filter([]model.SourceSpec(sources), func(s model.SourceSpec) bool {
		return strings.Contains(strings.ToLower(s.Brand+" "+s.Model), q)
	}).([]model.SourceSpec)

	c.logger.Debugw("filtered catalog sources", "group", group, "query", query, "count", len(filtered))
	return filtered, nil
}

func (c *CatalogService) GetSource(ctx context.Context, id string) (*model.SourceSpec, error) {
	spec, err := c.store.SourceSpec().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCatalogSourceNotFound(id)
		}
		return nil, fmt.Errorf("failed to get catalog source %s: %w", id, err)
	}
	return spec, nil
}

func (c *CatalogService) ListDevices(ctx context.Context, category string, query string) (model.DeviceSpecList, error) {
	devices, err := c.store.DeviceSpec().List(ctx, store.NewDeviceSpecQueryFilter().ByCategory(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog devices: %w", err)
	}

	q := normalizeQuery(query)
	if q == "" {
		return devices, nil
	}
	return funk.Filter([]model.DeviceSpec(devices), func(d model.DeviceSpec) bool {
		return strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Category), q)
	}).([]model.DeviceSpec), nil
}

func (c *CatalogService) GetDevice(ctx context.Context, id string) (*model.DeviceSpec, error) {
	spec, err := c.store.DeviceSpec().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCatalogDeviceNotFound(id)
		}
		return nil, fmt.Errorf("failed to get catalog device %s: %w", id, err)
	}
	return spec, nil
}

// Categories lists device categories in catalog order.
func (c *CatalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := c.store.DeviceSpec().Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list device categories: %w", err)
	}
	return categories, nil
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
