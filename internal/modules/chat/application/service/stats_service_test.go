package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	botEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	redisClient "github.com/warrior-ram/demo-ai-chatbot/pkg/redis"
)

type countBotRepo struct {
	active int64
}

func (r *countBotRepo) Create(bot *botEntity.Bot) error          { return nil }
func (r *countBotRepo) GetByID(id int64) (*botEntity.Bot, error) { return nil, nil }
func (r *countBotRepo) List() ([]botEntity.Bot, error)           { return nil, nil }
func (r *countBotRepo) Update(bot *botEntity.Bot) error          { return nil }
func (r *countBotRepo) Delete(id int64) error                    { return nil }
func (r *countBotRepo) CountActive() (int64, error)              { return r.active, nil }

type countDocRepo struct {
	total int64
	calls int
}

func (r *countDocRepo) Create(doc *botEntity.Document) error              { return nil }
func (r *countDocRepo) GetByID(id int64) (*botEntity.Document, error)     { return nil, nil }
func (r *countDocRepo) ListByBotID(botID int64) ([]botEntity.Document, error) { return nil, nil }
func (r *countDocRepo) UpdateChunkCount(id int64, chunkCount int) error   { return nil }
func (r *countDocRepo) Delete(id int64) error                             { return nil }
func (r *countDocRepo) Count() (int64, error) {
	r.calls++
	return r.total, nil
}

func newStatsFixture() (StatsService, *countDocRepo) {
	sessionRepo := &fakeSessionRepo{sessions: map[int64]*entity.ChatSession{}}
	leadRepo := &fakeLeadRepo{leads: map[int64]*entity.Lead{}}
	botRepo := &countBotRepo{active: 2}
	docRepo := &countDocRepo{total: 7}
	return NewStatsService(sessionRepo, leadRepo, botRepo, docRepo), docRepo
}

func TestDashboardStatsCounts(t *testing.T) {
	svc, _ := newStatsFixture()

	stats, err := svc.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalSessions)
	assert.Equal(t, int64(0), stats.TotalLeads)
	assert.Equal(t, int64(2), stats.ActiveBots)
	assert.Equal(t, int64(7), stats.TotalDocuments)
}

func TestDashboardStatsCache(t *testing.T) {
	srv := miniredis.RunT(t)
	redisClient.SetClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))
	defer redisClient.SetClient(nil)

	svc, docRepo := newStatsFixture()

	first, err := svc.DashboardStats()
	require.NoError(t, err)
	require.Equal(t, 1, docRepo.calls)

	// 30 秒内命中缓存，不再查库
	docRepo.total = 99
	second, err := svc.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, first.TotalDocuments, second.TotalDocuments)
	assert.Equal(t, 1, docRepo.calls)

	// 缓存过期后重新统计
	srv.FastForward(31 * time.Second)
	third, err := svc.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(99), third.TotalDocuments)
	assert.Equal(t, 2, docRepo.calls)
}
