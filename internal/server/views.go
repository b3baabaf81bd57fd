package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"deal_dashboard/internal/domain"
	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/service/dashboard"
	"deal_dashboard/internal/domain/value"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/errcodes"
	"deal_dashboard/pkg/httpx/reply"
	"deal_dashboard/pkg/httpx/req"
	"deal_dashboard/pkg/rest"
)

type viewService interface {
	Defaults() dashboard.Defaults
	BrokerPerformance(ctx context.Context, id contextx.SessionID, q dashboard.PerformanceQuery) ([]entity.BrokerPerformance, error)
	RollingAverage(ctx context.Context, id contextx.SessionID, q dashboard.ChartQuery) ([]entity.ChartDataPoint, error)
	BrokerWeekly(ctx context.Context, id contextx.SessionID, q dashboard.WeeklyQuery) (dashboard.WeeklyView, error)
	LeadSources(ctx context.Context, id contextx.SessionID, f value.Filter) ([]entity.LeadSourceSummary, error)
}

type ViewServer struct {
	viewService viewService
}

func NewViewServer(viewService viewService) ViewServer {
	return ViewServer{
		viewService: viewService,
	}
}

func (s ViewServer) getV1BrokersPerformance(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	q, err := parsePerformanceQuery(r, s.viewService.Defaults())
	if err != nil {
		return fmt.Errorf("parsePerformanceQuery: %w", err)
	}

	performances, err := s.viewService.BrokerPerformance(ctx, id, dashboard.PerformanceQuery{
		Mode:     q.Mode,
		MinDeals: q.MinDeals,
		Filter:   q.filter(),
	})
	if err != nil {
		return fmt.Errorf("viewService.BrokerPerformance: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.BrokerPerformanceList{
		Mode:     q.Mode.String(),
		MinDeals: q.MinDeals,
		Brokers:  lo.Map(performances, newRESTBrokerPerformance),
	})

	return nil
}

func (s ViewServer) getV1RollingAverage(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	q, err := parseChartQuery(r, s.viewService.Defaults())
	if err != nil {
		return fmt.Errorf("parseChartQuery: %w", err)
	}

	points, err := s.viewService.RollingAverage(ctx, id, dashboard.ChartQuery{
		WindowDays:  q.WindowDays,
		LimitPoints: q.LimitPoints,
		Mode:        q.Mode,
		Filter:      q.filter(),
	})
	if err != nil {
		return fmt.Errorf("viewService.RollingAverage: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.RollingAverageChart{
		WindowDays:  q.WindowDays,
		LimitPoints: q.LimitPoints,
		Mode:        q.Mode.String(),
		Points:      lo.Map(points, newRESTChartPoint),
	})

	return nil
}

func (s ViewServer) getV1BrokerWeekly(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	broker := chi.URLParam(r, "broker")

	// chi routes on the raw path when one is set, leaving "A%2FB" escaped.
	if r.URL.RawPath != "" {
		if broker, err = url.PathUnescape(broker); err != nil {
			return domain.WrapError(err, errcodes.ValidationError, "invalid broker name")
		}
	}

	q, err := parseWeeklyQuery(r, broker, s.viewService.Defaults())
	if err != nil {
		return fmt.Errorf("parseWeeklyQuery: %w", err)
	}

	view, err := s.viewService.BrokerWeekly(ctx, id, dashboard.WeeklyQuery{
		Broker:    q.Broker,
		Threshold: q.Threshold,
		RateMode:  q.RateMode,
		Year:      q.Year,
	})
	if err != nil {
		return fmt.Errorf("viewService.BrokerWeekly: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBrokerWeekly(view))

	return nil
}

func (s ViewServer) getV1LeadSources(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	q := parseFilter(r)
	if err = req.Validate(ctx, q); err != nil {
		return fmt.Errorf("req.Validate: %w", err)
	}

	sources, err := s.viewService.LeadSources(ctx, id, q.filter())
	if err != nil {
		return fmt.Errorf("viewService.LeadSources: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.LeadSourceList{
		Sources: lo.Map(sources, newRESTLeadSource),
	})

	return nil
}
