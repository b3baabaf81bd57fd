package aggregate

import (
	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/value"
)

// LeadSourceBreakdown reports every lead source, including empty ones, in a
// fixed order. Flags are not exclusive: a deal flagged for both Rednote and
// LifeX is counted under both. Other holds deals with neither flag.
func LeadSourceBreakdown(deals []entity.Deal) []entity.LeadSourceSummary {
	var rednote, lifeX, other tally

	for _, d := range deals {
		r, l := d.IsFromRednote(), d.IsFromLifeX()

		if r {
			rednote.add(d)
		}

		if l {
			lifeX.add(d)
		}

		if !r && !l {
			other.add(d)
		}
	}

	return []entity.LeadSourceSummary{
		leadSourceSummary(value.LeadSourceRednote, &rednote),
		leadSourceSummary(value.LeadSourceLifeX, &lifeX),
		leadSourceSummary(value.LeadSourceOther, &other),
	}
}

func leadSourceSummary(source value.LeadSource, t *tally) entity.LeadSourceSummary {
	return entity.LeadSourceSummary{
		Source:         string(source),
		TotalDeals:     t.total,
		SettledDeals:   t.settled,
		SettledRate:    t.settledRate(),
		SettledValue:   t.settledValue.InexactFloat64(),
		ConvertedDeals: t.converted,
		ConversionRate: t.conversionRate(),
	}
}
