// Package ingest decodes uploaded deal sheets into entity.Deal values.
package ingest

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"deal_dashboard/internal/domain"
	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/pkg/errcodes"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatExcel Format = "xlsx"
	FormatCSV   Format = "csv"
)

func (f Format) String() string {
	return string(f)
}

//nolint:gochecknoglobals
var (
	formatByExt = map[string]Format{
		".json": FormatJSON,
		".xlsx": FormatExcel,
		".xlsm": FormatExcel,
		".csv":  FormatCSV,
	}
	formatByMediaType = map[string]Format{
		"application/json": FormatJSON,
		"text/json":        FormatJSON,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatExcel,
		"text/csv": FormatCSV,
	}
)

// DetectFormat picks the decoder by file extension, then by media type.
func DetectFormat(fileName, contentType string) (Format, error) {
	if f, ok := formatByExt[strings.ToLower(filepath.Ext(fileName))]; ok {
		return f, nil
	}

	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if f, ok := formatByMediaType[mediaType]; ok {
			return f, nil
		}
	}

	return "", domain.NewError(
		errcodes.UnsupportedUpload,
		fmt.Sprintf("unsupported upload %q: expected .json, .xlsx or .csv", fileName),
	)
}

// Decode reads every deal from r. Any decoding failure is an InvalidUpload
// error; partial results are never returned.
func Decode(r io.Reader, format Format) ([]entity.Deal, error) {
	var (
		records []record
		err     error
	)

	switch format {
	case FormatJSON:
		records, err = decodeJSON(r)
	case FormatExcel:
		records, err = decodeExcel(r)
	case FormatCSV:
		records, err = decodeCSV(r)
	default:
		return nil, domain.NewError(errcodes.UnsupportedUpload, fmt.Sprintf("unsupported format %q", format))
	}

	if err != nil {
		return nil, domain.WrapError(err, errcodes.InvalidUpload, "invalid "+format.String()+" upload")
	}

	deals := make([]entity.Deal, 0, len(records))
	for _, rec := range records {
		deals = append(deals, rec.deal())
	}

	return deals, nil
}

// Decoder adapts Decode to callers that carry the format as a string.
type Decoder struct{}

func (Decoder) Decode(r io.Reader, format string) ([]entity.Deal, error) {
	return Decode(r, Format(format))
}
