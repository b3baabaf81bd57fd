package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// decodeJSON accepts a bare array of deal objects or an object holding the
// array under "deals".
func decodeJSON(r io.Reader) ([]record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	var items []any

	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		deals, ok := v["deals"].([]any)
		if !ok {
			return nil, errors.New(`expected an array of deals or an object with a "deals" array`)
		}

		items = deals
	default:
		return nil, errors.New("expected an array of deals")
	}

	records := make([]record, 0, len(items))
	known := 0

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("deal %d: expected an object, got %T", i, item)
		}

		rec := make(record, len(obj))

		for k, v := range obj {
			if f := lookup(k); f != fieldUnknown {
				rec[f] = stringify(v)
			}
		}

		known += len(rec)
		records = append(records, rec)
	}

	if len(records) > 0 && known == 0 {
		return nil, errNoColumns
	}

	return records, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "Yes"
		}

		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
