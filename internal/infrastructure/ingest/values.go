package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"deal_dashboard/internal/domain/value"
)

//nolint:gochecknoglobals
var (
	moneyCleaner = strings.NewReplacer("$", "", ",", "", " ", "")
	// sheetDateLayouts are day-first display formats spreadsheets export
	// dates in.
	sheetDateLayouts = []string{"2/1/2006", "02/01/2006", "2/1/2006 15:04", "2-Jan-2006", "02-Jan-06"}
)

// parseValue reads a money amount such as "$1,250.50". Blank, unparseable
// and negative amounts become 0.
func parseValue(s string) float64 {
	s = moneyCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0
	}

	return d.InexactFloat64()
}

// normalizeDate rewrites spreadsheet dates as ISO days. Values that are
// already ISO are kept as is; values nothing recognises are kept so the
// engine can skip them.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if _, ok := value.ParseDay(s); ok {
		return s
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return value.DayKey(t)
		}
	}

	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return value.DayKey(t)
		}
	}

	return s
}
