package store

import (
	"context"

	"github.com/powerguard/autonomy-planner/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SourceSpec interface {
	List(ctx context.Context, filter *SourceSpecQueryFilter) (model.SourceSpecList, error)
	Get(ctx context.Context, id string) (*model.SourceSpec, error)
	Upsert(ctx context.Context, specs ...model.SourceSpec) error
	CountByType(ctx context.Context) (map[string]int64, error)
}

type SourceSpecStore struct {
	db *gorm.DB
}

// Make sure we conform to SourceSpec interface
var _ SourceSpec = (*SourceSpecStore)(nil)

func NewSourceSpecStore(db *gorm.DB) SourceSpec {
	return &SourceSpecStore{db: db}
}

// List returns the catalog sources in catalog order.
func (s *SourceSpecStore) List(ctx context.Context, filter *SourceSpecQueryFilter) (model.SourceSpecList, error) {
	var specs model.SourceSpecList
	tx := dbFrom(ctx, s.db).Model(&model.SourceSpec{})
	if filter != nil {
		tx = BaseQuerier(*filter).apply(tx)
	}
	if err := tx.Order("position, id").Find(&specs).Error; err != nil {
		return nil, err
	}
	return specs, nil
}

func (s *SourceSpecStore) Get(ctx context.Context, id string) (*model.SourceSpec, error) {
	var spec model.SourceSpec
	if err := dbFrom(ctx, s.db).First(&spec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &spec, nil
}

// Upsert inserts the specs and overwrites every column of existing ids.
func (s *SourceSpecStore) Upsert(ctx context.Context, specs ...model.SourceSpec) error {
	if len(specs) == 0 {
		return nil
	}
	err := dbFrom(ctx, s.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&specs).Error
	return translate(err)
}

func (s *SourceSpecStore) CountByType(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Total int64
	}
	err := dbFrom(ctx, s.db).Model(&model.SourceSpec{}).
		Select("type, COUNT(*) AS total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Total
	}
	return counts, nil
}
