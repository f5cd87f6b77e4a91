package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radiotrack",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	reportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radiotrack",
			Name:      "reports_generated_total",
			Help:      "Inventory reports generated by kind and format.",
		},
		[]string{"kind", "format"},
	)

	reportFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radiotrack",
			Name:      "report_fallbacks_total",
			Help:      "Report renders that degraded to the fallback document.",
		},
		[]string{"kind"},
	)

	backupRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radiotrack",
			Name:      "backup_runs_total",
			Help:      "Database backup attempts by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reportsGenerated, reportFallbacks, backupRuns)
	})
}

func IncHTTP(method, path, status string) {
	httpRequests.WithLabelValues(method, path, status).Inc()
}

func IncReport(kind, format string) {
	reportsGenerated.WithLabelValues(kind, format).Inc()
}

func IncReportFallback(kind string) {
	reportFallbacks.WithLabelValues(kind).Inc()
}

func IncBackup(result string) {
	backupRuns.WithLabelValues(result).Inc()
}
