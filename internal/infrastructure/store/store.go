// Package store keeps each session's uploaded deal set between requests.
package store

import (
	"time"

	"deal_dashboard/pkg/contextx"
)

// DefaultTTL is how long an untouched session keeps its deals.
const DefaultTTL = 24 * time.Hour

func key(id contextx.SessionID) string {
	return "deals:" + string(id)
}
