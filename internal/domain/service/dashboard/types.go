package dashboard

import (
	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/service/aggregate"
	"deal_dashboard/internal/domain/value"
)

// Defaults are applied to view queries that leave a parameter unset.
type Defaults struct {
	MinDeals        int
	WindowDays      int
	LimitPoints     int
	WeeklyThreshold int
	RollingMode     value.RollingAverageMode
}

func DefaultDefaults() Defaults {
	return Defaults{
		MinDeals:        aggregate.DefaultMinDeals,
		WindowDays:      aggregate.DefaultWindowDays,
		LimitPoints:     aggregate.DefaultLimitPoints,
		WeeklyThreshold: aggregate.DefaultWeeklyThreshold,
		RollingMode:     value.RollingAlwaysDefined,
	}
}

func (d Defaults) withFallbacks() Defaults {
	def := DefaultDefaults()

	if d.MinDeals < 0 {
		d.MinDeals = def.MinDeals
	}

	if d.WindowDays <= 0 {
		d.WindowDays = def.WindowDays
	}

	if d.LimitPoints < 0 {
		d.LimitPoints = def.LimitPoints
	}

	if d.WeeklyThreshold < 0 || d.WeeklyThreshold > aggregate.MaxWeeklyThreshold {
		d.WeeklyThreshold = def.WeeklyThreshold
	}

	if d.RollingMode == "" {
		d.RollingMode = def.RollingMode
	}

	return d
}

// Summary describes the stored deal set and the selector options it offers.
type Summary struct {
	Uploaded bool     `json:"uploaded"`
	Deals    int      `json:"deals"`
	Brokers  []string `json:"brokers"`
	Years    []string `json:"years"`
}

func summarize(deals []entity.Deal, uploaded bool) Summary {
	return Summary{
		Uploaded: uploaded,
		Deals:    len(deals),
		Brokers:  aggregate.Brokers(deals),
		Years:    aggregate.Years(deals),
	}
}

type PerformanceQuery struct {
	Mode     value.Mode
	MinDeals int
	Filter   value.Filter
}

type ChartQuery struct {
	WindowDays  int
	LimitPoints int
	Mode        value.RollingAverageMode
	Filter      value.Filter
}

type WeeklyQuery struct {
	Broker    string
	Threshold int
	RateMode  value.Mode
	Year      string
}

// WeeklyView is the weekly drill-down of one broker.
type WeeklyView struct {
	Broker     string                   `json:"broker"`
	Threshold  int                      `json:"threshold"`
	RateMode   value.Mode               `json:"rateMode"`
	Weeks      []entity.WeekStats       `json:"weeks"`
	Categories []entity.CategorySummary `json:"categories"`
}
