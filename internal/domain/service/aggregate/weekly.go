package aggregate

import (
	"fmt"
	"sort"
	"time"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/value"
)

// DefaultWeeklyThreshold splits quiet weeks from busy ones.
const (
	DefaultWeeklyThreshold = 20
	MaxWeeklyThreshold     = 60
)

// WeeklyStats buckets the deals of one broker into ISO weeks starting on
// Monday. Deals without a parseable date are skipped. Weeks are returned in
// chronological order.
func WeeklyStats(deals []entity.Deal, broker string) []entity.WeekStats {
	tallies := make(map[time.Time]*tally)

	for _, d := range deals {
		if d.BrokerName != broker {
			continue
		}

		day, ok := d.Day()
		if !ok {
			continue
		}

		week := value.WeekStart(day)
		if tallies[week] == nil {
			tallies[week] = &tally{}
		}

		tallies[week].add(d)
	}

	weeks := make([]entity.WeekStats, 0, len(tallies))

	for start, t := range tallies {
		weeks = append(weeks, entity.WeekStats{
			WeekStart:      start,
			TotalDeals:     t.total,
			SettledDeals:   t.settled,
			ConvertedDeals: t.converted,
			SettledRate:    t.settledRate(),
			ConversionRate: t.conversionRate(),
		})
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.Before(weeks[j].WeekStart)
	})

	return weeks
}

// ComputeThresholdCategoryChart splits weeks into those with fewer than
// threshold deals and the rest. Each category reports the mean of its weeks'
// own rates, not a rate re-derived from pooled totals. Categories without
// weeks are omitted.
func ComputeThresholdCategoryChart(
	weeks []entity.WeekStats,
	threshold int,
	rateMode value.Mode,
) []entity.CategorySummary {
	below := entity.CategorySummary{
		Category: entity.CategoryBelow,
		Label:    fmt.Sprintf("< %d deals/week", threshold),
	}
	atOrAbove := entity.CategorySummary{
		Category: entity.CategoryAtOrAbove,
		Label:    fmt.Sprintf(">= %d deals/week", threshold),
	}

	var belowRates, aboveRates float64

	for _, w := range weeks {
		r := w.SettledRate
		if rateMode == value.ModeConversion {
			r = w.ConversionRate
		}

		if w.TotalDeals < threshold {
			below.WeekCount++
			below.TotalDeals += w.TotalDeals
			belowRates += r

			continue
		}

		atOrAbove.WeekCount++
		atOrAbove.TotalDeals += w.TotalDeals
		aboveRates += r
	}

	result := make([]entity.CategorySummary, 0, 2) //nolint:mnd

	if below.WeekCount > 0 {
		below.AverageRate = belowRates / float64(below.WeekCount)
		result = append(result, below)
	}

	if atOrAbove.WeekCount > 0 {
		atOrAbove.AverageRate = aboveRates / float64(atOrAbove.WeekCount)
		result = append(result, atOrAbove)
	}

	return result
}
