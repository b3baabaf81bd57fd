package server_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"deal_dashboard/internal/domain/service/dashboard"
	"deal_dashboard/internal/infrastructure/ingest"
	"deal_dashboard/internal/infrastructure/store"
	"deal_dashboard/internal/server"
	"deal_dashboard/pkg/errcodes"
	"deal_dashboard/pkg/metrics"
	"deal_dashboard/pkg/middlewarex"
	"deal_dashboard/pkg/rest"
	"deal_dashboard/pkg/tests"
)

const dealsJSON = `[
	{"deal_id": "1", "broker_name": "Sam Lee", "deal_value": "100", "1. Application": "x", "6. Settled": "x", "latest_date": "2024-01-01", "from_rednote": "Yes"},
	{"deal_id": "2", "broker_name": "Sam Lee", "deal_value": "50", "1. Application": "x", "latest_date": "2024-01-07"},
	{"deal_id": "3", "broker_name": "Kim", "deal_value": "70", "6. Settled": "x", "latest_date": "2024-02-10"}
]`

func newClient(t *testing.T) tests.APIClient {
	t.Helper()

	svc := dashboard.NewService(
		store.NewMemoryStore(time.Hour),
		ingest.Decoder{},
		metrics.NewDashboard(prometheus.NewRegistry()),
	).WithDefaults(dashboard.Defaults{MinDeals: 1, WindowDays: 30, LimitPoints: 90, WeeklyThreshold: 20})

	srv := server.NewServer(
		server.NewDealServer(svc).WithMaxUploadBytes(1<<20),
		server.NewViewServer(svc),
	)

	r := chi.NewRouter()
	r.Use(middlewarex.SessionID, middlewarex.Recovery)
	srv.RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return tests.NewAPIClient(ts.URL, ts.Client())
}

func session(id string) http.Header {
	return http.Header{middlewarex.HeaderNameSessionID: []string{id}}
}

func upload(t *testing.T, client tests.APIClient, id string) {
	t.Helper()

	var set rest.DealSet

	resp, err := client.PostJSON(context.Background(), "/v1/deals", session(id), dealsJSON, &set, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 3, set.Deals)
}

func TestDealsLifecycle(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	client := newClient(t)

	var set rest.DealSet

	resp, err := client.Get(ctx, "/v1/deals", nil, &set, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.False(set.Uploaded)

	generated := resp.Header.Get(middlewarex.HeaderNameSessionID)
	rq.NotEmpty(generated)
	rq.Equal(generated, set.SessionID)

	upload(t, client, "a")

	resp, err = client.Get(ctx, "/v1/deals", session("a"), &set, nil)
	rq.NoError(err)
	rq.Equal(rest.DealSet{
		SessionID: "a",
		Uploaded:  true,
		Deals:     3,
		Brokers:   []string{"Kim", "Sam Lee"},
		Years:     []string{"2024"},
	}, set)

	resp, err = client.Get(ctx, "/v1/deals", session("b"), &set, nil)
	rq.NoError(err)
	rq.False(set.Uploaded, "sessions are isolated")

	resp, err = client.Delete(ctx, "/v1/deals", session("a"), nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusNoContent, resp.StatusCode)

	_, err = client.Get(ctx, "/v1/deals", session("a"), &set, nil)
	rq.NoError(err)
	rq.False(set.Uploaded)
}

func TestUploadMultipartCSV(t *testing.T) {
	rq := require.New(t)
	client := newClient(t)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "deals.csv")
	rq.NoError(err)
	_, err = part.Write([]byte("deal_id,broker_name,6. Settled,latest_date\n1,Sam,x,2024-03-01\n"))
	rq.NoError(err)
	rq.NoError(mw.Close())

	headers := session("m")
	headers.Set("Content-Type", mw.FormDataContentType())

	var set rest.DealSet

	resp, err := client.MultiForm(context.Background(), "/v1/deals", headers, &body, &set, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(1, set.Deals)
	rq.Equal([]string{"Sam"}, set.Brokers)
}

func TestUploadFailures(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)

	testCases := []struct {
		name        string
		endpoint    string
		contentType string
		body        string
		status      int
		code        errcodes.ErrorCode
	}{
		{
			name:     "Broken JSON",
			endpoint: "/v1/deals",
			body:     `[{"deal_id": `,
			status:   http.StatusBadRequest,
			code:     errcodes.InvalidUpload,
		},
		{
			name:        "Unsupported type",
			endpoint:    "/v1/deals?filename=deals.pdf",
			contentType: "application/pdf",
			body:        `%PDF`,
			status:      http.StatusUnsupportedMediaType,
			code:        errcodes.UnsupportedUpload,
		},
		{
			name:        "Multipart without file",
			endpoint:    "/v1/deals",
			contentType: "multipart/form-data; boundary=x",
			body:        "--x--\r\n",
			status:      http.StatusBadRequest,
			code:        errcodes.InvalidUpload,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			upload(t, client, tc.name)

			headers := session(tc.name)
			if tc.contentType != "" {
				headers.Set("Content-Type", tc.contentType)
			}

			var apiErr rest.Error

			resp, err := client.PostJSON(ctx, tc.endpoint, headers, tc.body, nil, &apiErr)
			rq.NoError(err)
			rq.Equal(tc.status, resp.StatusCode)
			rq.Equal(rest.ErrorCode(tc.code), apiErr.Code)

			var set rest.DealSet

			_, err = client.Get(ctx, "/v1/deals", session(tc.name), &set, nil)
			rq.NoError(err)
			rq.False(set.Uploaded, "a failed upload clears the previous deals")
		})
	}
}

func TestBrokersPerformance(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	client := newClient(t)

	upload(t, client, "p")

	var list rest.BrokerPerformanceList

	resp, err := client.Get(ctx, "/v1/brokers/performance?mode=conversion&minDeals=2", session("p"), &list, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("conversion", list.Mode)
	rq.Len(list.Brokers, 1)
	rq.Equal("Sam Lee", list.Brokers[0].BrokerName)
	rq.InDelta(100.0, list.Brokers[0].ConversionRate, 1e-9)

	resp, err = client.Get(ctx, "/v1/brokers/performance", session("p"), &list, nil)
	rq.NoError(err)
	rq.Equal(1, list.MinDeals, "server default")
	rq.Len(list.Brokers, 2)
}

func TestQueryValidation(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)

	testCases := []struct {
		endpoint string
		status   int
		code     errcodes.ErrorCode
	}{
		{"/v1/brokers/performance?mode=fastest", http.StatusBadRequest, errcodes.InvalidMode},
		{"/v1/brokers/performance?minDeals=-1", http.StatusBadRequest, errcodes.ValidationError},
		{"/v1/brokers/performance?minDeals=five", http.StatusBadRequest, errcodes.ValidationError},
		{"/v1/brokers/performance?year=last", http.StatusBadRequest, errcodes.ValidationError},
		{"/v1/charts/rolling-average?rollingMode=sometimes", http.StatusBadRequest, errcodes.InvalidRollingMode},
		{"/v1/charts/rolling-average?window=0", http.StatusBadRequest, errcodes.ValidationError},
		{"/v1/brokers/Kim/weekly?threshold=61", http.StatusBadRequest, errcodes.ValidationError},
		{"/v1/brokers/Kim/weekly?rateMode=x", http.StatusBadRequest, errcodes.InvalidMode},
		{"/v1/brokers/Nobody/weekly", http.StatusNotFound, errcodes.BrokerNotFound},
	}

	upload(t, client, "v")

	for _, tc := range testCases {
		t.Run(tc.endpoint, func(t *testing.T) {
			rq := require.New(t)

			var apiErr rest.Error

			resp, err := client.Get(ctx, tc.endpoint, session("v"), nil, &apiErr)
			rq.NoError(err)
			rq.Equal(tc.status, resp.StatusCode)
			rq.Equal(rest.ErrorCode(tc.code), apiErr.Code)
			rq.NotEmpty(apiErr.Message)
		})
	}
}

func TestRollingAverage(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	client := newClient(t)

	upload(t, client, "c")

	var chart rest.RollingAverageChart

	resp, err := client.Get(ctx, "/v1/charts/rolling-average?rollingMode=full-window-only", session("c"), &chart, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(30, chart.WindowDays)
	rq.Equal("full-window-only", chart.Mode)
	rq.Len(chart.Points, 3)
	rq.Nil(chart.Points[0].SettledAverage)
	rq.NotNil(chart.Points[2].SettledAverage)
	rq.InDelta(1.0/30, *chart.Points[2].SettledAverage, 1e-9)

	resp, err = client.Get(ctx, "/v1/charts/rolling-average?broker=Kim&limit=1", session("c"), &chart, nil)
	rq.NoError(err)
	rq.Len(chart.Points, 1)
	rq.Equal("2024-02-10", chart.Points[0].Date)
}

func TestBrokerWeekly(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	client := newClient(t)

	upload(t, client, "w")

	var weekly rest.BrokerWeekly

	endpoint := "/v1/brokers/" + url.PathEscape("Sam Lee") + "/weekly?threshold=2&rateMode=conversion"

	resp, err := client.Get(ctx, endpoint, session("w"), &weekly, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("Sam Lee", weekly.Broker)
	rq.Equal([]rest.Week{{
		WeekStart:      "2024-01-01",
		TotalDeals:     2,
		SettledDeals:   1,
		ConvertedDeals: 2,
		SettledRate:    50,
		ConversionRate: 100,
	}}, weekly.Weeks)
	rq.Equal([]rest.Category{{
		Category:    "at-or-above",
		Label:       ">= 2 deals/week",
		WeekCount:   1,
		TotalDeals:  2,
		AverageRate: 100,
	}}, weekly.Categories)
}

func TestLeadSources(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	client := newClient(t)

	var list rest.LeadSourceList

	resp, err := client.Get(ctx, "/v1/lead-sources", session("l"), &list, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(list.Sources, 3, "every source is listed even without deals")

	upload(t, client, "l")

	_, err = client.Get(ctx, "/v1/lead-sources?broker=Sam%20Lee", session("l"), &list, nil)
	rq.NoError(err)
	rq.Equal("Rednote", list.Sources[0].Source)
	rq.Equal(1, list.Sources[0].TotalDeals)
	rq.Equal(1, list.Sources[2].TotalDeals)
}

func TestBrokerWeeklyEscapedName(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	client := newClient(t)

	deals := []map[string]any{
		{"Deal ID": "s-1", "Broker Name": "Smith/Jones", "1. Application": "yes", "Latest Date": "2024-01-02"},
		{"Deal ID": "s-2", "Broker Name": "Smith", "Latest Date": "2024-01-03"},
	}

	var set rest.DealSet

	resp, err := client.Post(ctx, "/v1/deals", session("e"), deals, &set, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(2, set.Deals)

	var weekly rest.BrokerWeekly

	endpoint := "/v1/brokers/" + url.PathEscape("Smith/Jones") + "/weekly?threshold=1"

	resp, err = client.Get(ctx, endpoint, session("e"), &weekly, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("Smith/Jones", weekly.Broker)
	rq.Len(weekly.Weeks, 1)
	rq.Equal("2024-01-01", weekly.Weeks[0].WeekStart)
	rq.Equal(1, weekly.Weeks[0].TotalDeals)
}
