package store

import (
	"context"

	"github.com/powerguard/autonomy-planner/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceSpec interface {
	List(ctx context.Context, filter *DeviceSpecQueryFilter) (model.DeviceSpecList, error)
	Get(ctx context.Context, id string) (*model.DeviceSpec, error)
	Upsert(ctx context.Context, specs ...model.DeviceSpec) error
	Categories(ctx context.Context) ([]string, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

type DeviceSpecStore struct {
	db *gorm.DB
}

// Make sure we conform to DeviceSpec interface
var _ DeviceSpec = (*DeviceSpecStore)(nil)

func NewDeviceSpecStore(db *gorm.DB) DeviceSpec {
	return &DeviceSpecStore{db: db}
}

func (d *DeviceSpecStore) List(ctx context.Context, filter *DeviceSpecQueryFilter) (model.DeviceSpecList, error) {
	var specs model.DeviceSpecList
	tx := dbFrom(ctx, d.db).Model(&model.DeviceSpec{})
	if filter != nil {
		tx = BaseQuerier(*filter).apply(tx)
	}
	if err := tx.Order("position, id").Find(&specs).Error; err != nil {
		return nil, err
	}
	return specs, nil
}

func (d *DeviceSpecStore) Get(ctx context.Context, id string) (*model.DeviceSpec, error) {
	var spec model.DeviceSpec
	if err := dbFrom(ctx, d.db).First(&spec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &spec, nil
}

func (d *DeviceSpecStore) Upsert(ctx context.Context, specs ...model.DeviceSpec) error {
	if len(specs) == 0 {
		return nil
	}
	err := dbFrom(ctx, d.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&specs).Error
	return translate(err)
}

// Categories lists the distinct device categories in catalog order.
func (d *DeviceSpecStore) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := dbFrom(ctx, d.db).Model(&model.DeviceSpec{}).
		Select("category").
		Group("category").
		Order("MIN(position)").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (d *DeviceSpecStore) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Category string
		Total    int64
	}
	err := dbFrom(ctx, d.db).Model(&model.DeviceSpec{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Total
	}
	return counts, nil
}
