// Package rest holds the wire types of the public HTTP API.
package rest

// Error is the body of every non-2xx reply.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	SupportID string    `json:"supportId,omitempty"`
}

type ErrorCode string

// DealSet describes the session's stored deals.
type DealSet struct {
	SessionID string   `json:"sessionId"`
	Uploaded  bool     `json:"uploaded"`
	Deals     int      `json:"deals"`
	Brokers   []string `json:"brokers"`
	Years     []string `json:"years"`
}

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

type BrokerPerformanceList struct {
	Mode     string              `json:"mode"`
	MinDeals int                 `json:"minDeals"`
	Brokers  []BrokerPerformance `json:"brokers"`
}

// ChartPoint averages are null while the window lacks history.
type ChartPoint struct {
	Date           string   `json:"date"`
	SettledAverage *float64 `json:"settledDeals30DayAvg"`
	RednoteAverage *float64 `json:"rednoteDeals30DayAvg"`
}

type RollingAverageChart struct {
	WindowDays  int          `json:"windowDays"`
	LimitPoints int          `json:"limitPoints"`
	Mode        string       `json:"rollingMode"`
	Points      []ChartPoint `json:"points"`
}

type Week struct {
	WeekStart      string  `json:"weekStart"`
	TotalDeals     int     `json:"totalDeals"`
	SettledDeals   int     `json:"settledDeals"`
	ConvertedDeals int     `json:"convertedDeals"`
	SettledRate    float64 `json:"settledRate"`
	ConversionRate float64 `json:"conversionRate"`
}

type Category struct {
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	WeekCount   int     `json:"weekCount"`
	TotalDeals  int     `json:"totalDeals"`
	AverageRate float64 `json:"averageRate"`
}

type BrokerWeekly struct {
	Broker     string     `json:"broker"`
	Threshold  int        `json:"threshold"`
	RateMode   string     `json:"rateMode"`
	Weeks      []Week     `json:"weeks"`
	Categories []Category `json:"categories"`
}

type LeadSource struct {
	Source         string  `json:"source"`
	TotalDeals     int     `json:"totalDeals"`
	SettledDeals   int     `json:"settledDeals"`
	SettledRate    float64 `json:"settledRate"`
	SettledValue   float64 `json:"settledValue"`
	ConvertedDeals int     `json:"convertedDeals"`
	ConversionRate float64 `json:"conversionRate"`
}

type LeadSourceList struct {
	Sources []LeadSource `json:"sources"`
}
