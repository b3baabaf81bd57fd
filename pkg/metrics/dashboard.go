package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "deal_dashboard"

// Dashboard holds the collectors exported by the dashboard service.
type Dashboard struct {
	uploads     *prometheus.CounterVec
	dealsStored prometheus.Histogram
	aggregation *prometheus.HistogramVec
}

func NewDashboard(reg prometheus.Registerer) *Dashboard {
	factory := promauto.With(reg)

	return &Dashboard{
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Deal uploads by format and outcome.",
		}, []string{"format", "outcome"}),
		dealsStored: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_deals",
			Help:      "Number of deals per successful upload.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 6), //nolint:mnd
		}),
		aggregation: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Time spent computing a dashboard view.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
	}
}

func (d *Dashboard) ObserveUpload(format string, deals int, err error) {
	if err != nil {
		d.uploads.WithLabelValues(format, "error").Inc()
		return
	}

	d.uploads.WithLabelValues(format, "ok").Inc()
	d.dealsStored.Observe(float64(deals))
}

// ObserveAggregation is meant to be deferred: defer m.ObserveAggregation("view", time.Now()).
func (d *Dashboard) ObserveAggregation(view string, start time.Time) {
	d.aggregation.WithLabelValues(view).Observe(time.Since(start).Seconds())
}
