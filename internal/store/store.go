package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
	"github.com/powerguard/autonomy-planner/internal/store/model"
	"gorm.io/gorm"
	"sigs.k8s.io/yaml"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	SourceSpec() SourceSpec
	DeviceSpec() DeviceSpec
	InitialMigration(ctx context.Context) error
	Seed(ctx context.Context) error
	Statistics(ctx context.Context) (model.CatalogStats, error)
	Close() error
}

type DataStore struct {
	db         *gorm.DB
	sourceSpec SourceSpec
	deviceSpec DeviceSpec
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:         db,
		sourceSpec: NewSourceSpecStore(db),
		deviceSpec: NewDeviceSpecStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) SourceSpec() SourceSpec {
	return s.sourceSpec
}

func (s *DataStore) DeviceSpec() DeviceSpec {
	return s.deviceSpec
}

// InitialMigration creates the catalog tables from the models. Deployments use the SQL migrations instead.
func (s *DataStore) InitialMigration(ctx context.Context) error {
	return dbFrom(ctx, s.db).AutoMigrate(&model.SourceSpec{}, &model.DeviceSpec{})
}

func (s *DataStore) Statistics(ctx context.Context) (model.CatalogStats, error) {
	byType, err := s.SourceSpec().CountByType(ctx)
	if err != nil {
		return model.CatalogStats{}, err
	}
	byCategory, err := s.DeviceSpec().CountByCategory(ctx)
	if err != nil {
		return model.CatalogStats{}, err
	}
	return model.CatalogStats{SourcesByType: byType, DevicesByCategory: byCategory}, nil
}

// Seed upserts the embedded reference catalog in one transaction. Running it twice is harmless.
func (s *DataStore) Seed(ctx context.Context) error {
	sources, devices, err := DefaultCatalog()
	if err != nil {
		return err
	}

	return WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.SourceSpec().Upsert(ctx, sources...); err != nil {
			return fmt.Errorf("seeding sources: %w", err)
		}
		if err := s.DeviceSpec().Upsert(ctx, devices...); err != nil {
			return fmt.Errorf("seeding devices: %w", err)
		}
		return nil
	})
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DefaultCatalog decodes the embedded catalog. Sources get the efficiency table of their type and a
// health factor of 1, and both lists keep their file order through Position.
func DefaultCatalog() (model.SourceSpecList, model.DeviceSpecList, error) {
	var catalog struct {
		Sources model.SourceSpecList `json:"sources"`
		Devices model.DeviceSpecList `json:"devices"`
	}
	if err := yaml.UnmarshalStrict(catalogYAML, &catalog); err != nil {
		return nil, nil, fmt.Errorf("decoding catalog: %w", err)
	}

	for i := range catalog.Sources {
		src := &catalog.Sources[i]
		t, err := autonomy.ParseSourceType(src.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog source %s: %w", src.ID, err)
		}
		src.Type = t.String()
		src.HealthFactor = 1
		src.Efficiency = model.EfficiencyTable(autonomy.DefaultPortEfficiencies(t))
		src.Position = i
	}
	for i := range catalog.Devices {
		catalog.Devices[i].Position = i
	}
	return catalog.Sources, catalog.Devices, nil
}
