package aggregate_test

import (
	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/value"
)

type dealOption func(*entity.Deal)

func settledOn(date string) dealOption {
	return func(d *entity.Deal) {
		d.Stages[value.SettledIndex] = date
		d.LatestDate = date
	}
}

func applied(marker string) dealOption {
	return func(d *entity.Deal) { d.Stages[0] = marker }
}

func dated(date string) dealOption {
	return func(d *entity.Deal) { d.LatestDate = date }
}

func worth(v float64) dealOption {
	return func(d *entity.Deal) { d.Value = v }
}

func rednote() dealOption {
	return func(d *entity.Deal) { d.FromRednote = value.FlagYes }
}

func lifeX() dealOption {
	return func(d *entity.Deal) { d.FromLifeX = value.FlagYes }
}

func newDeal(id, broker string, opts ...dealOption) entity.Deal {
	d := entity.Deal{ID: id, Name: "deal " + id, BrokerName: broker, Status: "open"}
	for _, opt := range opts {
		opt(&d)
	}

	return d
}
