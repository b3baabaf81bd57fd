package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"deal_dashboard/internal/domain"
	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/service/aggregate"
	"deal_dashboard/internal/domain/value"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/errcodes"
	"deal_dashboard/pkg/logx"
)

func (s *Service) BrokerPerformance(
	ctx context.Context,
	id contextx.SessionID,
	q PerformanceQuery,
) ([]entity.BrokerPerformance, error) {
	defer s.metrics.ObserveAggregation("broker_performance", time.Now())

	deals, err := s.deals(ctx, id)
	if err != nil {
		return nil, err
	}

	if q.Mode == "" {
		q.Mode = value.ModeSettled
	}

	performances := aggregate.ComputeBrokerPerformance(aggregate.FilterDeals(deals, q.Filter), q.Mode)

	return aggregate.FilterByMinimumDeals(performances, q.MinDeals), nil
}

func (s *Service) RollingAverage(
	ctx context.Context,
	id contextx.SessionID,
	q ChartQuery,
) ([]entity.ChartDataPoint, error) {
	defer s.metrics.ObserveAggregation("rolling_average", time.Now())

	deals, err := s.deals(ctx, id)
	if err != nil {
		return nil, err
	}

	opts := aggregate.DefaultSeriesOptions()
	opts.WindowDays = q.WindowDays
	opts.LimitPoints = q.LimitPoints
	opts.Mode = q.Mode

	return aggregate.BuildChartSeries(aggregate.FilterDeals(deals, q.Filter), opts), nil
}

// BrokerWeekly fails with BrokerNotFound when the broker has no deals at
// all; a year without deals yields an empty view instead.
func (s *Service) BrokerWeekly(ctx context.Context, id contextx.SessionID, q WeeklyQuery) (WeeklyView, error) {
	defer s.metrics.ObserveAggregation("broker_weekly", time.Now())

	deals, err := s.deals(ctx, id)
	if err != nil {
		return WeeklyView{}, err
	}

	if !slices.Contains(aggregate.Brokers(deals), q.Broker) {
		return WeeklyView{}, domain.NewError(errcodes.BrokerNotFound, fmt.Sprintf("broker %q has no deals", q.Broker))
	}

	if q.RateMode == "" {
		q.RateMode = value.ModeSettled
	}

	weeks := aggregate.WeeklyStats(aggregate.FilterDeals(deals, value.Filter{Year: q.Year}), q.Broker)

	logger(ctx).Debug("weekly stats", slog.String(logx.FieldBroker, q.Broker), slog.Int("weeks", len(weeks)))

	return WeeklyView{
		Broker:     q.Broker,
		Threshold:  q.Threshold,
		RateMode:   q.RateMode,
		Weeks:      weeks,
		Categories: aggregate.ComputeThresholdCategoryChart(weeks, q.Threshold, q.RateMode),
	}, nil
}

func (s *Service) LeadSources(
	ctx context.Context,
	id contextx.SessionID,
	f value.Filter,
) ([]entity.LeadSourceSummary, error) {
	defer s.metrics.ObserveAggregation("lead_sources", time.Now())

	deals, err := s.deals(ctx, id)
	if err != nil {
		return nil, err
	}

	return aggregate.LeadSourceBreakdown(aggregate.FilterDeals(deals, f)), nil
}
