package ingest

import (
	"errors"
	"strings"
	"unicode"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/value"
)

var errNoColumns = errors.New("no recognised deal columns")

type field int

const (
	fieldUnknown field = iota
	fieldID
	fieldName
	fieldBroker
	fieldStatus
	fieldValue
	fieldLatestDate
	fieldCreatedDate
	fieldRednote
	fieldLifeX
	fieldStage // + stage index
	fieldFlag  = fieldStage + value.StageCount // + flag index
)

//nolint:gochecknoglobals
var columns = buildColumns()

func buildColumns() map[string]field {
	c := map[string]field{
		"deal_id":      fieldID,
		"id":           fieldID,
		"deal_name":    fieldName,
		"name":         fieldName,
		"broker_name":  fieldBroker,
		"broker":       fieldBroker,
		"status":       fieldStatus,
		"deal_value":   fieldValue,
		"value":        fieldValue,
		"latest_date":  fieldLatestDate,
		"created_date": fieldCreatedDate,
		"from_rednote": fieldRednote,
		"rednote":      fieldRednote,
		"from_lifex":   fieldLifeX,
		"lifex":        fieldLifeX,
	}

	for i, s := range value.Stages {
		c[normalize(s.String())] = fieldStage + field(i)
	}

	for i, f := range value.SettlementFlags {
		c[normalize(f.String())] = fieldFlag + field(i)
	}

	return c
}

// normalize folds "Deal ID", "deal-id", "deal_id" and "From Rednote?" style
// headers onto one key: lower case letters and digits, with every run of
// anything else collapsed to a single underscore.
func normalize(header string) string {
	var b strings.Builder

	pending := false

	for _, r := range strings.ToLower(header) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}

			b.WriteRune(r)

			pending = false

			continue
		}

		pending = true
	}

	return b.String()
}

func lookup(header string) field {
	return columns[normalize(header)]
}

// record is one decoded row keyed by recognised column.
type record map[field]string

func (r record) deal() entity.Deal {
	d := entity.Deal{
		ID:          r[fieldID],
		Name:        r[fieldName],
		BrokerName:  strings.TrimSpace(r[fieldBroker]),
		Status:      r[fieldStatus],
		Value:       parseValue(r[fieldValue]),
		LatestDate:  normalizeDate(r[fieldLatestDate]),
		CreatedDate: normalizeDate(r[fieldCreatedDate]),
		FromRednote: r[fieldRednote],
		FromLifeX:   r[fieldLifeX],
	}

	for i := range d.Stages {
		d.Stages[i] = r[fieldStage+field(i)]
	}

	for i := range d.SettlementFlags {
		d.SettlementFlags[i] = r[fieldFlag+field(i)]
	}

	return d
}
