package entity

import (
	"strings"
	"time"

	"deal_dashboard/internal/domain/value"
)

// Deal is one uploaded loan application row. Deals are never mutated after
// ingest; every view is derived from a slice of them.
type Deal struct {
	ID         string  `json:"deal_id"`
	Name       string  `json:"deal_name"`
	BrokerName string  `json:"broker_name"`
	Status     string  `json:"status"`
	Value      float64 `json:"deal_value"`

	// Stages[i] holds the marker for value.Stages[i]; empty means not reached.
	Stages          [value.StageCount]string `json:"stages"`
	SettlementFlags [2]string                `json:"settlement_flags"`

	LatestDate  string `json:"latest_date,omitempty"`
	CreatedDate string `json:"created_date,omitempty"`

	FromRednote string `json:"from_rednote,omitempty"`
	FromLifeX   string `json:"from_lifex,omitempty"`
}

func reached(marker string) bool {
	return strings.TrimSpace(marker) != ""
}

func (d Deal) IsSettled() bool {
	return reached(d.Stages[value.SettledIndex])
}

// IsConverted reports whether the deal moved past enquiry into any stage.
func (d Deal) IsConverted() bool {
	for _, marker := range d.Stages {
		if reached(marker) {
			return true
		}
	}

	for _, marker := range d.SettlementFlags {
		if reached(marker) {
			return true
		}
	}

	return false
}

func (d Deal) IsFromRednote() bool {
	return strings.TrimSpace(d.FromRednote) == value.FlagYes
}

func (d Deal) IsFromLifeX() bool {
	return strings.TrimSpace(d.FromLifeX) == value.FlagYes
}

// DateString is the raw bucketing date: latest activity, else creation.
func (d Deal) DateString() string {
	if strings.TrimSpace(d.LatestDate) != "" {
		return d.LatestDate
	}

	return d.CreatedDate
}

// Day is the calendar day the deal is bucketed under. ok is false when the
// deal carries no parseable date.
func (d Deal) Day() (time.Time, bool) {
	return value.ParseDay(d.DateString())
}

// Predicate selects deals for a chart series.
type Predicate func(Deal) bool

func Settled(d Deal) bool     { return d.IsSettled() }
func FromRednote(d Deal) bool { return d.IsFromRednote() }
func FromLifeX(d Deal) bool   { return d.IsFromLifeX() }
