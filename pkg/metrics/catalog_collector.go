package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/powerguard/autonomy-planner/internal/store/model"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// StatisticsProvider is the part of the store the catalog collector reads from.
type StatisticsProvider interface {
	Statistics(ctx context.Context) (model.CatalogStats, error)
}

type catalogStatsCollector struct {
	provider          StatisticsProvider
	sourcesByType     *prometheus.Desc
	devicesByCategory *prometheus.Desc
}

// NewCatalogStatsCollector exposes the catalog size, read from the store on every scrape.
func NewCatalogStatsCollector(p StatisticsProvider) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_catalog_%s", powerguard, name)
	}

	return &catalogStatsCollector{
		provider: p,
		sourcesByType: prometheus.NewDesc(
			fqName("sources_total"),
			"Number of catalog power sources by type.",
			[]string{"type"},
			nil,
		),
		devicesByCategory: prometheus.NewDesc(
			fqName("devices_total"),
			"Number of catalog devices by category.",
			[]string{"category"},
			nil,
		),
	}
}

func (c *catalogStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sourcesByType
	ch <- c.devicesByCategory
}

func (c *catalogStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := c.provider.Statistics(ctx)
	if err != nil {
		zap.S().Named("catalog_collector").Errorf("failed to collect catalog statistics: %s", err)
		return
	}
	for t, total := range stats.SourcesByType {
		ch <- prometheus.MustNewConstMetric(c.sourcesByType, prometheus.GaugeValue, float64(total), t)
	}
	for category, total := range stats.DevicesByCategory {
		ch <- prometheus.MustNewConstMetric(c.devicesByCategory, prometheus.GaugeValue, float64(total), category)
	}
}
