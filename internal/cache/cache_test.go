package cache

import (
	"context"
	"testing"

	"matchboard/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionChannel_RoundTrip(t *testing.T) {
	ch := SessionChannel("abc-123")
	assert.Equal(t, "dashboard:session:abc-123", ch)

	sid, ok := SessionFromChannel(ch)
	assert.True(t, ok)
	assert.Equal(t, "abc-123", sid)

	_, ok = SessionFromChannel(BroadcastChannel)
	assert.False(t, ok)
	_, ok = SessionFromChannel(SessionChannelPrefix)
	assert.False(t, ok)
}

func TestConnect(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	for _, addr := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		rdb := Connect(context.Background(), addr)
		require.NotNil(t, rdb, addr)
		_ = rdb.Close()
	}
}

func TestConnect_Unavailable(t *testing.T) {
	for _, addr := range []string{"", "   ", "redis://%zz", "127.0.0.1:1"} {
		assert.Nil(t, Connect(context.Background(), addr), addr)
	}
}

func TestNewClient_CountsCommandErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	require.NoError(t, mr.Set("greeting", "hello"))

	rdb, err := NewClient(mr.Addr())
	require.NoError(t, err)
	defer rdb.Close()
	ctx := context.Background()

	incr := observability.RedisErrorRate.WithLabelValues("incr")
	get := observability.RedisErrorRate.WithLabelValues("get")
	incrBefore, getBefore := testutil.ToFloat64(incr), testutil.ToFloat64(get)

	assert.Error(t, rdb.Incr(ctx, "greeting").Err())
	assert.ErrorIs(t, rdb.Get(ctx, "missing").Err(), redis.Nil)

	assert.Equal(t, incrBefore+1, testutil.ToFloat64(incr))
	assert.Equal(t, getBefore, testutil.ToFloat64(get), "missing keys are not errors")
}
