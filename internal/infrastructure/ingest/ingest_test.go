package ingest_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"deal_dashboard/internal/domain"
	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/infrastructure/ingest"
	"deal_dashboard/pkg/errcodes"
)

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		name        string
		fileName    string
		contentType string
		expected    ingest.Format
		wantErr     bool
	}{
		{name: "JSON extension", fileName: "deals.json", expected: ingest.FormatJSON},
		{name: "Excel extension upper case", fileName: "DEALS.XLSX", expected: ingest.FormatExcel},
		{name: "CSV extension", fileName: "export.csv", expected: ingest.FormatCSV},
		{name: "Media type fallback", fileName: "blob", contentType: "application/json; charset=utf-8", expected: ingest.FormatJSON},
		{name: "Unsupported", fileName: "deals.pdf", contentType: "application/pdf", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			f, err := ingest.DetectFormat(tc.fileName, tc.contentType)
			if tc.wantErr {
				rq.True(domain.HasCode(err, errcodes.UnsupportedUpload))
				return
			}

			rq.NoError(err)
			rq.Equal(tc.expected, f)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	rq := require.New(t)

	body := `[
		{"deal_id": "1", "deal_name": "Smith refinance", "broker_name": " Sam ", "deal_value": "$1,250.50",
		 "1. Application": "2024-01-02", "6. Settled": "2024-02-01", "Settlement Booked": "yes",
		 "latest_date": "2024-02-01", "from_rednote": "Yes", "extra": {"ignored": true}},
		{"deal_id": 2, "broker_name": "Kim", "deal_value": -40, "from_lifex": true, "created_date": null}
	]`

	deals, err := ingest.Decode(strings.NewReader(body), ingest.FormatJSON)
	rq.NoError(err)
	rq.Len(deals, 2)

	first := deals[0]
	rq.Equal("1", first.ID)
	rq.Equal("Sam", first.BrokerName)
	rq.InDelta(1250.5, first.Value, 1e-9)
	rq.True(first.IsSettled())
	rq.Equal("yes", first.SettlementFlags[0])
	rq.True(first.IsFromRednote())

	second := deals[1]
	rq.Equal("2", second.ID)
	rq.Zero(second.Value, "negative values become 0")
	rq.True(second.IsFromLifeX())
	rq.False(second.IsConverted())
	rq.Empty(second.CreatedDate)
}

func TestDecodeJSONWrapped(t *testing.T) {
	rq := require.New(t)

	deals, err := ingest.Decode(strings.NewReader(`{"deals": [{"Deal ID": "7", "Broker Name": "Lee"}]}`), ingest.FormatJSON)
	rq.NoError(err)
	rq.Equal([]string{"7"}, []string{deals[0].ID})
	rq.Equal("Lee", deals[0].BrokerName)

	deals, err = ingest.Decode(strings.NewReader(`[]`), ingest.FormatJSON)
	rq.NoError(err)
	rq.Empty(deals)
}

func TestDecodeInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		format ingest.Format
	}{
		{name: "Broken JSON", body: `[{"deal_id": `, format: ingest.FormatJSON},
		{name: "JSON scalar", body: `42`, format: ingest.FormatJSON},
		{name: "JSON array of scalars", body: `[1, 2]`, format: ingest.FormatJSON},
		{name: "JSON without known keys", body: `[{"foo": 1}]`, format: ingest.FormatJSON},
		{name: "Not a workbook", body: `plain text`, format: ingest.FormatExcel},
		{name: "Empty CSV", body: ``, format: ingest.FormatCSV},
		{name: "CSV without known columns", body: "a,b\n1,2\n", format: ingest.FormatCSV},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			deals, err := ingest.Decode(strings.NewReader(tc.body), tc.format)
			rq.Error(err)
			rq.Nil(deals)
			rq.True(domain.HasCode(err, errcodes.InvalidUpload), err.Error())
		})
	}
}

func TestDecodeCSV(t *testing.T) {
	rq := require.New(t)

	body := "Deal ID,Broker Name,Deal Value,3. Approved,6. Settled,Latest Date,Notes\n" +
		"1,Sam,\"$2,000\",x,x,15/03/2024,call back\n" +
		",,,,,,\n" +
		"2,Kim,abc\n"

	deals, err := ingest.Decode(strings.NewReader(body), ingest.FormatCSV)
	rq.NoError(err)
	rq.Len(deals, 2)

	rq.InDelta(2000.0, deals[0].Value, 1e-9)
	rq.Equal("2024-03-15", deals[0].LatestDate)
	rq.True(deals[0].IsSettled())
	rq.Zero(deals[1].Value)
	rq.Empty(deals[1].Stages[2])
}

func TestDecodeExcel(t *testing.T) {
	rq := require.New(t)

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Notes")
	rq.NoError(err)
	rq.NoError(f.SetSheetName("Sheet1", ingest.DealsSheet))

	rows := [][]any{
		{
			"Deal ID", "Broker Name", "Deal Value", "1. Application", "6. Settled", "Settlement Booked",
			"Latest Date", "Created Date", "From Rednote?", "From LifeX?",
		},
		{"A-1", "Sam", 1250.5, "yes", "yes", "yes", time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), 45299, "Yes", "No"},
		{"A-2", "Kim", "900", "", "", "", "2024-01-03", "", "", "Yes"},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		rq.NoError(err)
		rq.NoError(f.SetSheetRow(ingest.DealsSheet, cell, &row))
	}

	// Created Date of A-1 is a serial shown with the built-in m/d/yy format.
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	rq.NoError(err)
	rq.NoError(f.SetCellStyle(ingest.DealsSheet, "H2", "H2", dateStyle))

	buf, err := f.WriteToBuffer()
	rq.NoError(err)

	deals, err := ingest.Decode(bytes.NewReader(buf.Bytes()), ingest.FormatExcel)
	rq.NoError(err)

	rq.Equal([]entity.Deal{
		{
			ID:              "A-1",
			BrokerName:      "Sam",
			Value:           1250.5,
			Stages:          [6]string{"yes", "", "", "", "", "yes"},
			SettlementFlags: [2]string{"yes", ""},
			LatestDate:      "2024-01-07",
			CreatedDate:     "2024-01-08",
			FromRednote:     "Yes",
			FromLifeX:       "No",
		},
		{
			ID:         "A-2",
			BrokerName: "Kim",
			Value:      900,
			LatestDate: "2024-01-03",
			FromLifeX:  "Yes",
		},
	}, deals)

	day, ok := deals[0].Day()
	rq.True(ok)
	rq.Equal(time.Sunday, day.Weekday())
	rq.True(deals[0].IsFromRednote())
	rq.False(deals[0].IsFromLifeX())
	rq.True(deals[1].IsFromLifeX())
}

// Column names as they appear in exported deal sheets.
const sheetHeaders = "Deal ID,Deal Name,Broker Name,Status,Deal Value," +
	"1. Application,2. Assessment,3. Approved,4. Loan Document,5. Settlement Queue,6. Settled," +
	"Settlement Booked,Settlement Date,Latest Date,Created Date,From Rednote?,From LifeX?"

func TestDecodeSheetHeaders(t *testing.T) {
	jsonBody := `[{
		"Deal ID": "9", "Deal Name": "Lee purchase", "Broker Name": "Lee", "Status": "settled", "Deal Value": "$5,000",
		"1. Application": "2024-01-01", "2. Assessment": "2024-01-02", "3. Approved": "2024-01-03",
		"4. Loan Document": "2024-01-04", "5. Settlement Queue": "2024-01-05", "6. Settled": "2024-01-06",
		"Settlement Booked": "Yes", "Settlement Date": "2024-01-06",
		"Latest Date": "2024-01-06", "Created Date": "2023-12-20",
		"From Rednote?": "Yes", "From LifeX?": "Yes"
	}]`

	csvBody := sheetHeaders + "\n" +
		"9,Lee purchase,Lee,settled,\"$5,000\",2024-01-01,2024-01-02,2024-01-03,2024-01-04,2024-01-05,2024-01-06," +
		"Yes,2024-01-06,2024-01-06,2023-12-20,Yes,Yes\n"

	testCases := []struct {
		name   string
		body   string
		format ingest.Format
	}{
		{name: "JSON", body: jsonBody, format: ingest.FormatJSON},
		{name: "CSV", body: csvBody, format: ingest.FormatCSV},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			deals, err := ingest.Decode(strings.NewReader(tc.body), tc.format)
			rq.NoError(err)
			rq.Len(deals, 1)

			rq.Equal(entity.Deal{
				ID:         "9",
				Name:       "Lee purchase",
				BrokerName: "Lee",
				Status:     "settled",
				Value:      5000,
				Stages: [6]string{
					"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06",
				},
				SettlementFlags: [2]string{"Yes", "2024-01-06"},
				LatestDate:      "2024-01-06",
				CreatedDate:     "2023-12-20",
				FromRednote:     "Yes",
				FromLifeX:       "Yes",
			}, deals[0])

			rq.True(deals[0].IsFromRednote())
			rq.True(deals[0].IsFromLifeX())
			rq.True(deals[0].IsSettled())
		})
	}
}
