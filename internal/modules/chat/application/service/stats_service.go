package service

import (
	"context"
	"encoding/json"
	"time"

	botRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/respond"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/repository"
	redisClient "github.com/warrior-ram/demo-ai-chatbot/pkg/redis"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"
)

const (
	statsCacheKey = "admin:stats:dashboard"
	statsCacheTTL = 30 * time.Second
)

type StatsService interface {
	// DashboardStats 管理端总览数据
	DashboardStats() (*respond.DashboardStats, error)
}

type statsServiceImpl struct {
	sessionRepo repository.SessionRepository
	leadRepo    repository.LeadRepository
	botRepo     botRepository.BotRepository
	docRepo     botRepository.DocumentRepository
}

func NewStatsService(
	sessionRepo repository.SessionRepository,
	leadRepo repository.LeadRepository,
	botRepo botRepository.BotRepository,
	docRepo botRepository.DocumentRepository,
) StatsService {
	return &statsServiceImpl{
		sessionRepo: sessionRepo,
		leadRepo:    leadRepo,
		botRepo:     botRepo,
		docRepo:     docRepo,
	}
}

func (s *statsServiceImpl) DashboardStats() (*respond.DashboardStats, error) {
	// 四张表全量 count，Redis 可用时短暂缓存
	if cached := s.fromCache(); cached != nil {
		return cached, nil
	}

	totalSessions, err := s.sessionRepo.Count()
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	totalLeads, err := s.leadRepo.Count()
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	activeBots, err := s.botRepo.CountActive()
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	totalDocuments, err := s.docRepo.Count()
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	stats := &respond.DashboardStats{
		TotalSessions:  totalSessions,
		TotalLeads:     totalLeads,
		ActiveBots:     activeBots,
		TotalDocuments: totalDocuments,
	}
	s.toCache(stats)
	return stats, nil
}

func (s *statsServiceImpl) fromCache() *respond.DashboardStats {
	if !redisClient.IsConnected() {
		return nil
	}
	raw, err := redisClient.Get(context.Background(), statsCacheKey)
	if err != nil || raw == "" {
		return nil
	}
	var stats respond.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		// 缓存内容损坏就丢弃
		_, _ = redisClient.Del(context.Background(), statsCacheKey)
		return nil
	}
	return &stats
}

func (s *statsServiceImpl) toCache(stats *respond.DashboardStats) {
	if !redisClient.IsConnected() {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := redisClient.Set(context.Background(), statsCacheKey, string(raw), statsCacheTTL); err != nil {
		zlog.Warn("stats cache write failed: " + err.Error())
	}
}
