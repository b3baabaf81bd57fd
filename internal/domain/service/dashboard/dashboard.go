// Package dashboard serves the views of one session's uploaded deal set.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type DealStore interface {
	Load(ctx context.Context, id contextx.SessionID) ([]entity.Deal, bool, error)
	Save(ctx context.Context, id contextx.SessionID, deals []entity.Deal) error
	Clear(ctx context.Context, id contextx.SessionID) error
}

type DealDecoder interface {
	Decode(r io.Reader, format string) ([]entity.Deal, error)
}

type Metrics interface {
	ObserveUpload(format string, deals int, err error)
	ObserveAggregation(view string, start time.Time)
}

type Service struct {
	store    DealStore
	decoder  DealDecoder
	metrics  Metrics
	defaults Defaults
}

func NewService(store DealStore, decoder DealDecoder, metrics Metrics) *Service {
	return &Service{
		store:    store,
		decoder:  decoder,
		metrics:  metrics,
		defaults: DefaultDefaults(),
	}
}

func (s *Service) WithDefaults(d Defaults) *Service {
	s.defaults = d.withFallbacks()
	return s
}

func (s *Service) Defaults() Defaults {
	return s.defaults
}

// Upload replaces the session's deal set with the decoded file. A file that
// fails to decode also clears the previous deal set, so stale data is never
// shown under a failed upload.
func (s *Service) Upload(ctx context.Context, id contextx.SessionID, format string, r io.Reader) (Summary, error) {
	deals, err := s.decoder.Decode(r, format)
	s.metrics.ObserveUpload(format, len(deals), err)

	if err != nil {
		if clearErr := s.store.Clear(ctx, id); clearErr != nil {
			logger(ctx).Error("store.Clear after failed upload", logx.Error(clearErr))
		}

		return Summary{}, fmt.Errorf("decoder.Decode: %w", err)
	}

	if err = s.store.Save(ctx, id, deals); err != nil {
		return Summary{}, fmt.Errorf("store.Save: %w", err)
	}

	logger(ctx).Info("deals uploaded", slog.String("format", format), slog.Int(logx.FieldDeals, len(deals)))

	return summarize(deals, true), nil
}

func (s *Service) Summary(ctx context.Context, id contextx.SessionID) (Summary, error) {
	deals, ok, err := s.store.Load(ctx, id)
	if err != nil {
		return Summary{}, fmt.Errorf("store.Load: %w", err)
	}

	return summarize(deals, ok), nil
}

func (s *Service) Clear(ctx context.Context, id contextx.SessionID) error {
	if err := s.store.Clear(ctx, id); err != nil {
		return fmt.Errorf("store.Clear: %w", err)
	}

	logger(ctx).Info("deals cleared")

	return nil
}

// deals loads the session's deal set. A session without an upload is an
// empty set, not an error.
func (s *Service) deals(ctx context.Context, id contextx.SessionID) ([]entity.Deal, error) {
	deals, _, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.Load: %w", err)
	}

	return deals, nil
}
