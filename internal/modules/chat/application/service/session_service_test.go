package service

import (
	"testing"
	"time"

	botEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/request"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/domain/entity"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBotRepo struct {
	bots map[int64]*botEntity.Bot
}

func (f *fakeBotRepo) Create(b *botEntity.Bot) error {
	b.Id = int64(len(f.bots) + 1)
	f.bots[b.Id] = b
	return nil
}

func (f *fakeBotRepo) GetByID(id int64) (*botEntity.Bot, error) {
	if b, ok := f.bots[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBotRepo) List() ([]botEntity.Bot, error) {
	var out []botEntity.Bot
	for _, b := range f.bots {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBotRepo) Update(b *botEntity.Bot) error {
	f.bots[b.Id] = b
	return nil
}

func (f *fakeBotRepo) Delete(id int64) error {
	delete(f.bots, id)
	return nil
}

func (f *fakeBotRepo) CountActive() (int64, error) { return int64(len(f.bots)), nil }

func newSessionFixture() (SessionService, *fakeSessionRepo, *fakeMessageRepo) {
	sessions := &fakeSessionRepo{sessions: map[int64]*entity.ChatSession{}}
	messages := &fakeMessageRepo{}
	bots := &fakeBotRepo{bots: map[int64]*botEntity.Bot{
		3: {Id: 3, Name: "Support Bot", WelcomeMessage: "Hi!", CreatedAt: time.Now()},
	}}
	return NewSessionService(sessions, messages, bots), sessions, messages
}

func TestCreateOrGetSessionReusesExisting(t *testing.T) {
	svc, _, _ := newSessionFixture()

	first, err := svc.CreateOrGetSession(request.CreateSessionRequest{VisitorId: "v1", BotId: 3})
	require.NoError(t, err)
	second, err := svc.CreateOrGetSession(request.CreateSessionRequest{VisitorId: "v1", BotId: 3})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	// 不同访客各自有会话
	third, err := svc.CreateOrGetSession(request.CreateSessionRequest{VisitorId: "v2", BotId: 3})
	require.NoError(t, err)
	assert.NotEqual(t, first.Id, third.Id)
}

func TestCreateOrGetSessionGeneratesVisitorId(t *testing.T) {
	svc, _, _ := newSessionFixture()

	first, err := svc.CreateOrGetSession(request.CreateSessionRequest{BotId: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, first.VisitorId)

	// 服务端生成的访客 ID 每次不同，不会误复用别人的会话
	second, err := svc.CreateOrGetSession(request.CreateSessionRequest{BotId: 3})
	require.NoError(t, err)
	assert.NotEqual(t, first.VisitorId, second.VisitorId)
	assert.NotEqual(t, first.Id, second.Id)
}

func TestCreateOrGetSessionUnknownBot(t *testing.T) {
	svc, _, _ := newSessionFixture()
	_, err := svc.CreateOrGetSession(request.CreateSessionRequest{VisitorId: "v1", BotId: 99})
	assert.ErrorIs(t, err, xerr.ErrBotNotFound)
}

func TestGetHistory(t *testing.T) {
	svc, sessions, messages := newSessionFixture()
	session := &entity.ChatSession{BotId: 3, VisitorId: "v1", CreatedAt: time.Now()}
	require.NoError(t, sessions.Create(session))

	require.NoError(t, messages.Create(&entity.Message{SessionId: session.Id, Role: entity.RoleUser, Content: "hello"}))
	require.NoError(t, messages.Create(&entity.Message{SessionId: session.Id, Role: entity.RoleAssistant, Content: "Hi! How can I help?"}))

	history, err := svc.GetHistory(session.Id)
	require.NoError(t, err)
	assert.Equal(t, session.Id, history.SessionId)
	assert.Equal(t, 2, history.TotalMessages)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, entity.RoleUser, history.Messages[0].Role)
	assert.Equal(t, entity.RoleAssistant, history.Messages[1].Role)
}

func TestGetHistoryUnknownSession(t *testing.T) {
	svc, _, _ := newSessionFixture()
	_, err := svc.GetHistory(42)
	assert.ErrorIs(t, err, xerr.ErrSessionNotFound)
}

func TestCaptureLeadUpserts(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*entity.ChatSession{
		1: {Id: 1, BotId: 3, VisitorId: "v1"},
	}}
	leads := &fakeLeadRepo{leads: map[int64]*entity.Lead{}}
	svc := NewLeadService(leads, sessions)

	first, err := svc.CaptureLead(request.LeadCreateRequest{SessionId: 1, Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", first.Email)

	// 同会话再次登记做字段补全而不是新建
	second, err := svc.CaptureLead(request.LeadCreateRequest{SessionId: 1, Name: "Jane", Phone: "555-123-4567"})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, "a@b.com", second.Email)
	assert.Equal(t, "Jane", second.Name)
	assert.Equal(t, "555-123-4567", second.Phone)

	all, err := svc.ListLeads()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCaptureLeadUnknownSession(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*entity.ChatSession{}}
	leads := &fakeLeadRepo{leads: map[int64]*entity.Lead{}}
	svc := NewLeadService(leads, sessions)

	_, err := svc.CaptureLead(request.LeadCreateRequest{SessionId: 9, Email: "a@b.com"})
	assert.ErrorIs(t, err, xerr.ErrSessionNotFound)
}
