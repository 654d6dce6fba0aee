package model

// CatalogStats counts catalog entries by source type and by device category.
type CatalogStats struct {
	SourcesByType     map[string]int64
	DevicesByCategory map[string]int64
}
