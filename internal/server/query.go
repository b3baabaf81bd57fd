package server

import (
	"context"
	"fmt"
	"net/http"

	"deal_dashboard/internal/domain"
	"deal_dashboard/internal/domain/service/dashboard"
	"deal_dashboard/internal/domain/value"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/errcodes"
	"deal_dashboard/pkg/httpx/req"
)

type filterQuery struct {
	Broker string `validate:"max=200"`
	Year   string `validate:"omitempty,eq=all|numeric,max=4"`
}

type performanceQuery struct {
	filterQuery
	Mode     value.Mode
	MinDeals int `validate:"gte=0"`
}

type chartQuery struct {
	filterQuery
	Mode        value.RollingAverageMode
	WindowDays  int `validate:"gte=1,lte=365"`
	LimitPoints int `validate:"gte=0"`
}

type weeklyQuery struct {
	Broker    string `validate:"required,max=200"`
	Year      string `validate:"omitempty,eq=all|numeric,max=4"`
	RateMode  value.Mode
	Threshold int `validate:"gte=0,lte=60"`
}

func sessionID(ctx context.Context) (contextx.SessionID, error) {
	id, err := contextx.SessionIDFromContext(ctx)
	if err != nil {
		return "", domain.WrapError(err, errcodes.InternalServerError, "session id is not set")
	}

	return id, nil
}

func parseFilter(r *http.Request) filterQuery {
	return filterQuery{
		Broker: req.QueryString(r, "broker", value.All),
		Year:   req.QueryString(r, "year", value.All),
	}
}

func (q filterQuery) filter() value.Filter {
	return value.Filter{Broker: q.Broker, Year: q.Year}
}

func parseMode(r *http.Request, name string) (value.Mode, error) {
	m, err := value.ParseMode(req.QueryString(r, name, value.ModeSettled.String()))
	if err != nil {
		return "", domain.WrapError(err, errcodes.InvalidMode, fmt.Sprintf("%s must be settled or conversion", name))
	}

	return m, nil
}

func parseRollingMode(r *http.Request, fallback value.RollingAverageMode) (value.RollingAverageMode, error) {
	m, err := value.ParseRollingAverageMode(req.QueryString(r, "rollingMode", fallback.String()))
	if err != nil {
		return "", domain.WrapError(
			err,
			errcodes.InvalidRollingMode,
			"rollingMode must be always-defined or full-window-only",
		)
	}

	return m, nil
}

func parsePerformanceQuery(r *http.Request, d dashboard.Defaults) (performanceQuery, error) {
	q := performanceQuery{filterQuery: parseFilter(r)}

	var err error

	if q.Mode, err = parseMode(r, "mode"); err != nil {
		return q, err
	}

	if q.MinDeals, err = req.QueryInt(r, "minDeals", d.MinDeals); err != nil {
		return q, fmt.Errorf("req.QueryInt: %w", err)
	}

	if err = req.Validate(r.Context(), q); err != nil {
		return q, fmt.Errorf("req.Validate: %w", err)
	}

	return q, nil
}

func parseChartQuery(r *http.Request, d dashboard.Defaults) (chartQuery, error) {
	q := chartQuery{filterQuery: parseFilter(r)}

	var err error

	if q.Mode, err = parseRollingMode(r, d.RollingMode); err != nil {
		return q, err
	}

	if q.WindowDays, err = req.QueryInt(r, "window", d.WindowDays); err != nil {
		return q, fmt.Errorf("req.QueryInt: %w", err)
	}

	if q.LimitPoints, err = req.QueryInt(r, "limit", d.LimitPoints); err != nil {
		return q, fmt.Errorf("req.QueryInt: %w", err)
	}

	if err = req.Validate(r.Context(), q); err != nil {
		return q, fmt.Errorf("req.Validate: %w", err)
	}

	return q, nil
}

func parseWeeklyQuery(r *http.Request, broker string, d dashboard.Defaults) (weeklyQuery, error) {
	q := weeklyQuery{
		Broker: broker,
		Year:   req.QueryString(r, "year", value.All),
	}

	var err error

	if q.RateMode, err = parseMode(r, "rateMode"); err != nil {
		return q, err
	}

	if q.Threshold, err = req.QueryInt(r, "threshold", d.WeeklyThreshold); err != nil {
		return q, fmt.Errorf("req.QueryInt: %w", err)
	}

	if err = req.Validate(r.Context(), q); err != nil {
		return q, fmt.Errorf("req.Validate: %w", err)
	}

	return q, nil
}
