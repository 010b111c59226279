package state

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const stateTTL = 24 * time.Hour

// RedisStore 基于 Redis 的对话状态实现，多实例部署时共享
type RedisStore struct {
	cli *goredis.Client
}

func NewRedisStore(cli *goredis.Client) *RedisStore {
	return &RedisStore{cli: cli}
}

func lastResponseKey(sessionID int64) string {
	return fmt.Sprintf("chat:state:last_resp:%d", sessionID)
}

func fallbackKey(sessionID int64) string {
	return fmt.Sprintf("chat:state:fallback:%d", sessionID)
}

func (s *RedisStore) GetLastResponse(ctx context.Context, sessionID int64, category string) (string, error) {
	v, err := s.cli.HGet(ctx, lastResponseKey(sessionID), category).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *RedisStore) SetLastResponse(ctx context.Context, sessionID int64, category, response string) error {
	key := lastResponseKey(sessionID)
	if err := s.cli.HSet(ctx, key, category, response).Err(); err != nil {
		return err
	}
	return s.cli.Expire(ctx, key, stateTTL).Err()
}

func (s *RedisStore) IncrFallback(ctx context.Context, sessionID int64) (int, error) {
	key := fallbackKey(sessionID)
	n, err := s.cli.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	_ = s.cli.Expire(ctx, key, stateTTL).Err()
	return int(n), nil
}

func (s *RedisStore) Reset(ctx context.Context, sessionID int64) error {
	return s.cli.Del(ctx, lastResponseKey(sessionID), fallbackKey(sessionID)).Err()
}

var _ Store = (*RedisStore)(nil)
