package state

import "context"

// Store 会话级对话状态：每个类别上一次用过的回复（防复读）与连续兜底次数（转人工升级）。
// 进程内实现用于单机部署，Redis 实现用于多实例共享状态。
type Store interface {
	GetLastResponse(ctx context.Context, sessionID int64, category string) (string, error)
	SetLastResponse(ctx context.Context, sessionID int64, category, response string) error
	// IncrFallback 自增兜底计数并返回自增后的值
	IncrFallback(ctx context.Context, sessionID int64) (int, error)
	// Reset 清空会话的全部跟踪状态（会话结束时调用）
	Reset(ctx context.Context, sessionID int64) error
}
