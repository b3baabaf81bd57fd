package tests

import (
	"fmt"
	"time"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/value"
)

//nolint:gochecknoglobals // fixture data
var sampleBrokers = []string{
	"Alice Chen",
	"Ben Walker",
	"Chloe Nguyen",
	"Daniel Park",
	"Emma Rossi",
	"Farid Haddad",
}

// SampleDeals generates plausible deal books for tests and demos.
type SampleDeals struct {
	rnd   Randomizer
	start time.Time
	days  int
}

func NewSampleDeals(rnd Randomizer) SampleDeals {
	return SampleDeals{
		rnd:   rnd,
		start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		days:  365, //nolint:mnd // one year of history
	}
}

// WithPeriod spreads generated deals over days starting at start.
func (s SampleDeals) WithPeriod(start time.Time, days int) SampleDeals {
	s.start = start
	s.days = max(days, 1)

	return s
}

// Generate returns n deals. Each deal walks the pipeline to a random depth;
// roughly one in five has no stage at all and one in twenty has no date.
func (s SampleDeals) Generate(n int) []entity.Deal {
	deals := make([]entity.Deal, 0, n)

	for i := range n {
		deals = append(deals, s.deal(i))
	}

	return deals
}

func (s SampleDeals) deal(i int) entity.Deal {
	created := s.start.AddDate(0, 0, s.rnd.Intn(s.days))

	d := entity.Deal{
		ID:          fmt.Sprintf("D-%05d", i+1),
		Name:        fmt.Sprintf("Sample deal %d", i+1),
		BrokerName:  sampleBrokers[s.rnd.Intn(len(sampleBrokers))],
		Status:      "open",
		Value:       float64(50_000 + s.rnd.Intn(950_000)), //nolint:mnd
		CreatedDate: value.DayKey(created),
	}

	if s.rnd.Intn(5) > 0 { //nolint:mnd
		depth := 1 + s.rnd.Intn(value.StageCount)
		latest := created

		for stage := range depth {
			latest = latest.AddDate(0, 0, s.rnd.Intn(4)) //nolint:mnd
			d.Stages[stage] = value.DayKey(latest)
		}

		d.LatestDate = value.DayKey(latest)

		if depth == value.StageCount {
			d.Status = "settled"
			d.SettlementFlags[0] = value.DayKey(latest)
			d.SettlementFlags[1] = value.DayKey(latest)
		}
	}

	if s.rnd.Intn(20) == 0 { //nolint:mnd
		d.LatestDate, d.CreatedDate = "", ""
	}

	if s.rnd.Bool() {
		d.FromRednote = value.FlagYes
	}

	if s.rnd.Intn(3) == 0 { //nolint:mnd
		d.FromLifeX = value.FlagYes
	}

	return d
}
