package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"deal_dashboard/internal/domain"
	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// RedisStore keeps deal sets as one JSON document per session so that
// several API replicas can serve the same session.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, id contextx.SessionID) ([]entity.Deal, bool, error) {
	b, err := s.client.GetEx(ctx, key(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, unavailable(fmt.Errorf("redis.GetEx: %w", err))
	}

	var deals []entity.Deal
	if err = json.Unmarshal(b, &deals); err != nil {
		return nil, false, domain.WrapError(err, errcodes.InternalServerError, "corrupt session deals")
	}

	return deals, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id contextx.SessionID, deals []entity.Deal) error {
	if deals == nil {
		deals = []entity.Deal{}
	}

	b, err := json.Marshal(deals)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "encode session deals")
	}

	if err = s.client.Set(ctx, key(id), b, s.ttl).Err(); err != nil {
		return unavailable(fmt.Errorf("redis.Set: %w", err))
	}

	return nil
}

func (s *RedisStore) Clear(ctx context.Context, id contextx.SessionID) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return unavailable(fmt.Errorf("redis.Del: %w", err))
	}

	return nil
}

func unavailable(err error) error {
	return domain.WrapError(err, errcodes.StoreUnavailable, "deal store unavailable")
}
