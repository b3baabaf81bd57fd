package server

import (
	"github.com/samber/lo"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/service/dashboard"
	"deal_dashboard/internal/domain/value"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/rest"
)

func newRESTDealSet(id contextx.SessionID, s dashboard.Summary) rest.DealSet {
	return rest.DealSet{
		SessionID: id.String(),
		Uploaded:  s.Uploaded,
		Deals:     s.Deals,
		Brokers:   s.Brokers,
		Years:     s.Years,
	}
}

func newRESTBrokerPerformance(p entity.BrokerPerformance, _ int) rest.BrokerPerformance {
	return rest.BrokerPerformance{
		BrokerName:     p.BrokerName,
		TotalDeals:     p.TotalDeals,
		SettledDeals:   p.SettledDeals,
		SettledRate:    p.SettledRate,
		SettledValue:   p.SettledValue,
		AvgDealValue:   p.AvgDealValue,
		ConvertedDeals: p.ConvertedDeals,
		ConversionRate: p.ConversionRate,
	}
}

func newRESTChartPoint(p entity.ChartDataPoint, _ int) rest.ChartPoint {
	return rest.ChartPoint{
		Date:           p.Date,
		SettledAverage: p.SettledDeals30DayAvg,
		RednoteAverage: p.RednoteDeals30DayAvg,
	}
}

func newRESTBrokerWeekly(v dashboard.WeeklyView) rest.BrokerWeekly {
	return rest.BrokerWeekly{
		Broker:    v.Broker,
		Threshold: v.Threshold,
		RateMode:  v.RateMode.String(),
		Weeks: lo.Map(v.Weeks, func(w entity.WeekStats, _ int) rest.Week {
			return rest.Week{
				WeekStart:      value.DayKey(w.WeekStart),
				TotalDeals:     w.TotalDeals,
				SettledDeals:   w.SettledDeals,
				ConvertedDeals: w.ConvertedDeals,
				SettledRate:    w.SettledRate,
				ConversionRate: w.ConversionRate,
			}
		}),
		Categories: lo.Map(v.Categories, func(c entity.CategorySummary, _ int) rest.Category {
			return rest.Category{
				Category:    string(c.Category),
				Label:       c.Label,
				WeekCount:   c.WeekCount,
				TotalDeals:  c.TotalDeals,
				AverageRate: c.AverageRate,
			}
		}),
	}
}

func newRESTLeadSource(s entity.LeadSourceSummary, _ int) rest.LeadSource {
	return rest.LeadSource{
		Source:         s.Source,
		TotalDeals:     s.TotalDeals,
		SettledDeals:   s.SettledDeals,
		SettledRate:    s.SettledRate,
		SettledValue:   s.SettledValue,
		ConvertedDeals: s.ConvertedDeals,
		ConversionRate: s.ConversionRate,
	}
}
