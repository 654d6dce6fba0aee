package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	powerguard = "powerguard"

	calculationsTotal      = "calculations_total"
	overloadWarningsTotal  = "overload_warnings_total"
	connectionStatusTotal  = "connection_status_total"
	workspacesActive       = "workspaces_active"
	calculatedRuntimeHours = "calculated_runtime_hours"

	// Labels
	modelLabel  = "model"
	statusLabel = "status"
)

var calculationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: powerguard,
		Name:      calculationsTotal,
		Help:      "number of autonomy calculations by model",
	},
	[]string{modelLabel},
)

var overloadWarningsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: powerguard,
		Name:      overloadWarningsTotal,
		Help:      "number of overload warnings emitted by calculations",
	},
	[]string{modelLabel},
)

var connectionStatusTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: powerguard,
		Name:      connectionStatusTotal,
		Help:      "number of classified connections by status",
	},
	[]string{statusLabel},
)

var workspacesActiveMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: powerguard,
		Name:      workspacesActive,
		Help:      "number of workspaces held in memory",
	},
)

var calculatedRuntimeMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: powerguard,
		Name:      calculatedRuntimeHours,
		Help:      "distribution of the total runtime returned by calculations",
		Buckets:   []float64{1, 4, 8, 12, 24, 48, 72, 168},
	},
	[]string{modelLabel},
)

// ObserveCalculation records one finished calculation.
func ObserveCalculation(model string, totalHours float64, overloads int) {
	labels := prometheus.Labels{modelLabel: model}
	calculationsTotalMetric.With(labels).Inc()
	calculatedRuntimeMetric.With(labels).Observe(totalHours)
	if overloads > 0 {
		overloadWarningsTotalMetric.With(labels).Add(float64(overloads))
	}
}

func IncreaseConnectionStatusMetric(status string) {
	connectionStatusTotalMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

func UpdateWorkspacesActiveMetric(count int) {
	workspacesActiveMetric.Set(float64(count))
}

// Handler serves every collector registered on the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(calculationsTotalMetric)
	prometheus.MustRegister(overloadWarningsTotalMetric)
	prometheus.MustRegister(connectionStatusTotalMetric)
	prometheus.MustRegister(workspacesActiveMetric)
	prometheus.MustRegister(calculatedRuntimeMetric)
}
