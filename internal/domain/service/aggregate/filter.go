package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/value"
)

// FilterDeals applies the broker and year selectors. With a year selected,
// deals without a parseable date are dropped.
func FilterDeals(deals []entity.Deal, f value.Filter) []entity.Deal {
	if !f.ByBroker() && !f.ByYear() {
		return deals
	}

	return lo.Filter(deals, func(d entity.Deal, _ int) bool {
		if f.ByBroker() && d.BrokerName != f.Broker {
			return false
		}

		if f.ByYear() {
			day, ok := d.Day()
			if !ok || strconv.Itoa(day.Year()) != f.Year {
				return false
			}
		}

		return true
	})
}

// Brokers returns the sorted distinct non-blank broker names.
func Brokers(deals []entity.Deal) []string {
	names := lo.Uniq(lo.FilterMap(deals, func(d entity.Deal, _ int) (string, bool) {
		return d.BrokerName, strings.TrimSpace(d.BrokerName) != ""
	}))
	sort.Strings(names)

	return names
}

// Years returns the sorted distinct years of dated deals.
func Years(deals []entity.Deal) []string {
	years := lo.Uniq(lo.FilterMap(deals, func(d entity.Deal, _ int) (string, bool) {
		day, ok := d.Day()
		if !ok {
			return "", false
		}

		return strconv.Itoa(day.Year()), true
	}))
	sort.Strings(years)

	return years
}
