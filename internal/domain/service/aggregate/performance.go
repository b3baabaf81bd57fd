package aggregate

import (
	"sort"

	"github.com/samber/lo"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/value"
)

// DefaultMinDeals hides brokers with too few deals for their rates to mean
// anything.
const DefaultMinDeals = 5

// ComputeBrokerPerformance groups deals by broker name and ranks the result
// by settled value (ModeSettled) or conversion rate (ModeConversion). Ties
// keep the order in which brokers first appear in deals.
func ComputeBrokerPerformance(deals []entity.Deal, mode value.Mode) []entity.BrokerPerformance {
	brokers := lo.Uniq(lo.Map(deals, func(d entity.Deal, _ int) string {
		return d.BrokerName
	}))

	tallies := make(map[string]*tally, len(brokers))
	for _, broker := range brokers {
		tallies[broker] = &tally{}
	}

	for _, d := range deals {
		tallies[d.BrokerName].add(d)
	}

	result := lo.Map(brokers, func(broker string, _ int) entity.BrokerPerformance {
		t := tallies[broker]

		return entity.BrokerPerformance{
			BrokerName:     broker,
			TotalDeals:     t.total,
			SettledDeals:   t.settled,
			SettledRate:    t.settledRate(),
			SettledValue:   t.settledValue.InexactFloat64(),
			AvgDealValue:   t.avgSettledValue(),
			ConvertedDeals: t.converted,
			ConversionRate: t.conversionRate(),
		}
	})

	switch mode {
	case value.ModeConversion:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].ConversionRate > result[j].ConversionRate
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].SettledValue > result[j].SettledValue
		})
	}

	return result
}

// FilterByMinimumDeals keeps brokers with at least minDeals deals.
func FilterByMinimumDeals(performances []entity.BrokerPerformance, minDeals int) []entity.BrokerPerformance {
	return lo.Filter(performances, func(p entity.BrokerPerformance, _ int) bool {
		return p.TotalDeals >= minDeals
	})
}
