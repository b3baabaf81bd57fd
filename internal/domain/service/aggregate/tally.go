package aggregate

import (
	"github.com/shopspring/decimal"

	"deal_dashboard/internal/domain/entity"
)

// tally accumulates the counters shared by broker, week and lead-source
// views. Values are summed as decimals so that large books of deals do not
// drift.
type tally struct {
	total        int
	settled      int
	converted    int
	settledValue decimal.Decimal
}

func (t *tally) add(d entity.Deal) {
	t.total++

	if d.IsConverted() {
		t.converted++
	}

	if d.IsSettled() {
		t.settled++
		t.settledValue = t.settledValue.Add(decimal.NewFromFloat(d.Value))
	}
}

func (t *tally) settledRate() float64 {
	return rate(t.settled, t.total)
}

func (t *tally) conversionRate() float64 {
	return rate(t.converted, t.total)
}

func (t *tally) avgSettledValue() float64 {
	if t.settled == 0 {
		return 0
	}

	return t.settledValue.Div(decimal.NewFromInt(int64(t.settled))).InexactFloat64()
}

// rate is a percentage in [0,100]; a zero total yields 0.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(part) / float64(total) * 100 //nolint:mnd
}
