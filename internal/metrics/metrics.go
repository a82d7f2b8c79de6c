package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wells_refreshes_total",
		Help: "Completed refresh runs by dataset group and outcome",
	}, []string{"group", "status"})
	RefreshDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wells_refresh_duration_seconds",
		Help:    "Wall time of successful refresh runs",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"group"})
	RowsInserted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wells_rows_inserted_total",
		Help: "Rows inserted into master feature classes by coordinate bucket",
	}, []string{"group", "bucket"})
)

func init() {
	prometheus.MustRegister(RefreshesTotal, RefreshDuration, RowsInserted)
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
