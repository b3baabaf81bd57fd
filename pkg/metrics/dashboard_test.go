package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"deal_dashboard/pkg/metrics"
)

func TestDashboard(t *testing.T) {
	rq := require.New(t)

	reg := prometheus.NewRegistry()
	m := metrics.NewDashboard(reg)

	m.ObserveUpload("json", 12, nil)
	m.ObserveUpload("json", 3, nil)
	m.ObserveUpload("xlsx", 0, errors.New("zip: not a valid zip file"))
	m.ObserveAggregation("broker-performance", time.Now())

	count, err := testutil.GatherAndCount(reg, "deal_dashboard_uploads_total", "deal_dashboard_upload_deals")
	rq.NoError(err)
	rq.Equal(3, count)

	families, err := reg.Gather()
	rq.NoError(err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}

	rq.ElementsMatch([]string{
		"deal_dashboard_uploads_total",
		"deal_dashboard_upload_deals",
		"deal_dashboard_aggregation_duration_seconds",
	}, names)
}
