package connectors_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"deal_dashboard/pkg/application/connectors"
)

func TestRedis(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	srv := miniredis.RunT(t)

	r := &connectors.Redis{Address: srv.Addr(), PoolSize: 2}

	client := r.Client(ctx)
	rq.Same(client, r.Client(ctx))
	rq.NoError(r.Ping(ctx))

	srv.Close()
	rq.Error(r.Ping(ctx))

	r.Close(ctx)
}

func TestRedisCloseWithoutClient(t *testing.T) {
	rq := require.New(t)

	rq.NotPanics(func() { (&connectors.Redis{}).Close(context.Background()) })
}
