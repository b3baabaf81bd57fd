package entity

import "time"

type BrokerPerformance struct {
	BrokerName     string  `json:"brokerName"`
	TotalDeals     int     `json:"totalDeals"`
	SettledDeals   int     `json:"settledDeals"`
	SettledRate    float64 `json:"settledRate"`
	SettledValue   float64 `json:"settledValue"`
	AvgDealValue   float64 `json:"avgDealValue"`
	ConvertedDeals int     `json:"convertedDeals"`
	ConversionRate float64 `json:"conversionRate"`
}

// ChartDataPoint is one date of the rolling average chart. A nil average
// means the window did not have enough history.
type ChartDataPoint struct {
	Date                 string   `json:"date"`
	SettledDeals30DayAvg *float64 `json:"settledDeals30DayAvg"`
	RednoteDeals30DayAvg *float64 `json:"rednoteDeals30DayAvg"`
}

// WeekStats covers one broker for one ISO week.
type WeekStats struct {
	WeekStart      time.Time `json:"weekStart"`
	TotalDeals     int       `json:"totalDeals"`
	SettledDeals   int       `json:"settledDeals"`
	ConvertedDeals int       `json:"convertedDeals"`
	SettledRate    float64   `json:"settledRate"`
	ConversionRate float64   `json:"conversionRate"`
}

type Category string

const (
	CategoryBelow     Category = "below"
	CategoryAtOrAbove Category = "at-or-above"
)

type CategorySummary struct {
	Category    Category `json:"category"`
	Label       string   `json:"label"`
	WeekCount   int      `json:"weekCount"`
	TotalDeals  int      `json:"totalDeals"`
	AverageRate float64  `json:"averageRate"`
}

type LeadSourceSummary struct {
	Source         string  `json:"source"`
	TotalDeals     int     `json:"totalDeals"`
	SettledDeals   int     `json:"settledDeals"`
	SettledRate    float64 `json:"settledRate"`
	SettledValue   float64 `json:"settledValue"`
	ConvertedDeals int     `json:"convertedDeals"`
	ConversionRate float64 `json:"conversionRate"`
}
