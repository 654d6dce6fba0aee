package store

import (
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

func (b BaseQuerier) apply(tx *gorm.DB) *gorm.DB {
	for _, fn := range b.QueryFn {
		tx = fn(tx)
	}
	return tx
}

type SourceSpecQueryFilter BaseQuerier

func NewSourceSpecQueryFilter() *SourceSpecQueryFilter {
	return &SourceSpecQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

// ByTypes keeps entries whose type is one of types. An empty list keeps everything.
func (f *SourceSpecQueryFilter) ByTypes(types ...string) *SourceSpecQueryFilter {
	if len(types) == 0 {
		return f
	}
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("type IN ?", types)
	})
	return f
}

func (f *SourceSpecQueryFilter) OnlyPopular() *SourceSpecQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("popular = ?", true)
	})
	return f
}

type DeviceSpecQueryFilter BaseQuerier

func NewDeviceSpecQueryFilter() *DeviceSpecQueryFilter {
	return &DeviceSpecQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *DeviceSpecQueryFilter) ByCategory(category string) *DeviceSpecQueryFilter {
	if category == "" {
		return f
	}
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("category = ?", category)
	})
	return f
}

func (f *DeviceSpecQueryFilter) OnlyPopular() *DeviceSpecQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("popular = ?", true)
	})
	return f
}
