package state

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cli := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = cli.Close()
		mr.Close()
	})
	return NewRedisStore(cli)
}

func runStoreSuite(t *testing.T, s Store) {
	ctx := context.Background()

	// 初始状态
	v, err := s.GetLastResponse(ctx, 1, "greetings")
	require.NoError(t, err)
	assert.Empty(t, v)

	// 按会话+类别记录
	require.NoError(t, s.SetLastResponse(ctx, 1, "greetings", "Hello!"))
	require.NoError(t, s.SetLastResponse(ctx, 1, "pricing", "Plans start at $49."))
	require.NoError(t, s.SetLastResponse(ctx, 2, "greetings", "Hi there!"))

	v, err = s.GetLastResponse(ctx, 1, "greetings")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", v)
	v, err = s.GetLastResponse(ctx, 1, "pricing")
	require.NoError(t, err)
	assert.Equal(t, "Plans start at $49.", v)
	v, err = s.GetLastResponse(ctx, 2, "greetings")
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", v)

	// 兜底计数按会话累加
	n, err := s.IncrFallback(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.IncrFallback(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = s.IncrFallback(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Reset 只清理目标会话
	require.NoError(t, s.Reset(ctx, 1))
	v, err = s.GetLastResponse(ctx, 1, "greetings")
	require.NoError(t, err)
	assert.Empty(t, v)
	n, err = s.IncrFallback(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	v, err = s.GetLastResponse(ctx, 2, "greetings")
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", v)
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	runStoreSuite(t, setupRedisStore(t))
}
