package aggregate

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/value"
)

const (
	DefaultWindowDays  = 30
	DefaultLimitPoints = 90
)

// DateCounts maps a calendar-day key to the number of distinct deal ids
// bucketed on that day.
type DateCounts map[string]int

// CountByDate counts distinct deal ids per day among deals matching pred.
// Re-uploaded rows sharing an id and a day count once. Deals without a
// parseable date are skipped.
func CountByDate(deals []entity.Deal, pred entity.Predicate) DateCounts {
	ids := make(map[string]map[string]struct{})

	for _, d := range deals {
		if !pred(d) {
			continue
		}

		day, ok := d.Day()
		if !ok {
			continue
		}

		key := value.DayKey(day)
		if ids[key] == nil {
			ids[key] = make(map[string]struct{})
		}

		ids[key][d.ID] = struct{}{}
	}

	counts := make(DateCounts, len(ids))
	for key, set := range ids {
		counts[key] = len(set)
	}

	return counts
}

// earliest returns the first day present in counts.
func (c DateCounts) earliest() (time.Time, bool) {
	if len(c) == 0 {
		return time.Time{}, false
	}

	keys := lo.Keys(c)
	sort.Strings(keys)

	return value.ParseDay(keys[0])
}

// ComputeRollingAverage returns the average daily count over the inclusive
// window [target-windowDays, target]. The divisor is always windowDays.
//
// In RollingAlwaysDefined mode the result is always ok. In
// RollingFullWindowOnly mode ok is false until target is at least windowDays
// after historyStart; a zero historyStart means the earliest day in counts.
func ComputeRollingAverage(
	counts DateCounts,
	target time.Time,
	windowDays int,
	mode value.RollingAverageMode,
	historyStart time.Time,
) (float64, bool) {
	if windowDays < 1 {
		windowDays = 1
	}

	from := target.AddDate(0, 0, -windowDays)

	if mode == value.RollingFullWindowOnly {
		if historyStart.IsZero() {
			start, ok := counts.earliest()
			if !ok {
				return 0, false
			}

			historyStart = start
		}

		if value.DaysBetween(historyStart, target) < windowDays {
			return 0, false
		}

		sum := 0
		for day := from; !day.After(target); day = day.AddDate(0, 0, 1) {
			sum += counts[value.DayKey(day)]
		}

		return float64(sum) / float64(windowDays), true
	}

	if len(counts) == 0 {
		return 0, true
	}

	sum := 0

	for key, n := range counts {
		day, ok := value.ParseDay(key)
		if !ok || day.Before(from) || day.After(target) {
			continue
		}

		sum += n
	}

	return float64(sum) / float64(windowDays), true
}

// SeriesOptions configures BuildChartSeries. Zero values fall back to the
// defaults of DefaultSeriesOptions.
type SeriesOptions struct {
	WindowDays  int
	LimitPoints int
	Mode        value.RollingAverageMode
	Settled     entity.Predicate
	Rednote     entity.Predicate
}

func DefaultSeriesOptions() SeriesOptions {
	return SeriesOptions{
		WindowDays:  DefaultWindowDays,
		LimitPoints: DefaultLimitPoints,
		Mode:        value.RollingAlwaysDefined,
		Settled:     entity.Settled,
		Rednote:     entity.FromRednote,
	}
}

func (o SeriesOptions) withDefaults() SeriesOptions {
	def := DefaultSeriesOptions()

	if o.WindowDays <= 0 {
		o.WindowDays = def.WindowDays
	}

	if o.Mode == "" {
		o.Mode = def.Mode
	}

	if o.Settled == nil {
		o.Settled = def.Settled
	}

	if o.Rednote == nil {
		o.Rednote = def.Rednote
	}

	return o
}

// BuildChartSeries emits one point per distinct valid date in deals, in
// ascending order. LimitPoints > 0 keeps only the most recent points; the
// averages of kept points still see the full history.
func BuildChartSeries(deals []entity.Deal, opts SeriesOptions) []entity.ChartDataPoint {
	opts = opts.withDefaults()

	dates := Dates(deals)
	if len(dates) == 0 {
		return []entity.ChartDataPoint{}
	}

	historyStart, _ := value.ParseDay(dates[0])
	settled := CountByDate(deals, opts.Settled)
	rednote := CountByDate(deals, opts.Rednote)

	points := make([]entity.ChartDataPoint, 0, len(dates))

	for _, key := range dates {
		day, _ := value.ParseDay(key)

		points = append(points, entity.ChartDataPoint{
			Date:                 key,
			SettledDeals30DayAvg: average(settled, day, opts, historyStart),
			RednoteDeals30DayAvg: average(rednote, day, opts, historyStart),
		})
	}

	if opts.LimitPoints > 0 && len(points) > opts.LimitPoints {
		points = points[len(points)-opts.LimitPoints:]
	}

	return points
}

func average(counts DateCounts, day time.Time, opts SeriesOptions, historyStart time.Time) *float64 {
	avg, ok := ComputeRollingAverage(counts, day, opts.WindowDays, opts.Mode, historyStart)
	if !ok {
		return nil
	}

	return &avg
}

// Dates returns the sorted distinct calendar-day keys of deals with a
// parseable date.
func Dates(deals []entity.Deal) []string {
	keys := lo.FilterMap(deals, func(d entity.Deal, _ int) (string, bool) {
		day, ok := d.Day()
		if !ok {
			return "", false
		}

		return value.DayKey(day), true
	})

	keys = lo.Uniq(keys)
	sort.Strings(keys)

	return keys
}
