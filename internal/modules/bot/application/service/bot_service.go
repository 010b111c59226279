package service

import (
	"errors"
	"time"

	botRequest "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/application/dto/request"
	botRespond "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/application/dto/respond"
	botEntity "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/entity"
	botRepository "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	"gorm.io/gorm"
)

type BotService interface {
	CreateBot(req botRequest.CreateBotRequest) (*botRespond.BotItem, error)
	GetBot(id int64) (*botRespond.BotItem, error)
	ListBots() ([]botRespond.BotItem, error)
	UpdateBot(id int64, req botRequest.UpdateBotRequest) (*botRespond.BotItem, error)
	DeleteBot(id int64) error
}

type botServiceImpl struct {
	botRepo botRepository.BotRepository
}

func NewBotService(botRepo botRepository.BotRepository) BotService {
	return &botServiceImpl{botRepo: botRepo}
}

func (s *botServiceImpl) CreateBot(req botRequest.CreateBotRequest) (*botRespond.BotItem, error) {
	bot := &botEntity.Bot{
		Name:           req.Name,
		SystemPrompt:   req.SystemPrompt,
		WelcomeMessage: req.WelcomeMessage,
		CreatedAt:      time.Now(),
	}
	if err := s.botRepo.Create(bot); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toBotItem(bot), nil
}

func (s *botServiceImpl) GetBot(id int64) (*botRespond.BotItem, error) {
	bot, err := s.botRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrBotNotFound
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toBotItem(bot), nil
}

func (s *botServiceImpl) ListBots() ([]botRespond.BotItem, error) {
	bots, err := s.botRepo.List()
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	out := make([]botRespond.BotItem, 0, len(bots))
	for i := range bots {
		out = append(out, *toBotItem(&bots[i]))
	}
	return out, nil
}

func (s *botServiceImpl) UpdateBot(id int64, req botRequest.UpdateBotRequest) (*botRespond.BotItem, error) {
	bot, err := s.botRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.ErrBotNotFound
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	if req.Name != nil && *req.Name != "" {
		bot.Name = *req.Name
	}
	if req.SystemPrompt != nil && *req.SystemPrompt != "" {
		bot.SystemPrompt = *req.SystemPrompt
	}
	if req.WelcomeMessage != nil && *req.WelcomeMessage != "" {
		bot.WelcomeMessage = *req.WelcomeMessage
	}

	if err := s.botRepo.Update(bot); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return toBotItem(bot), nil
}

func (s *botServiceImpl) DeleteBot(id int64) error {
	if _, err := s.botRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return xerr.ErrBotNotFound
		}
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	if err := s.botRepo.Delete(id); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	return nil
}

func toBotItem(bot *botEntity.Bot) *botRespond.BotItem {
	return &botRespond.BotItem{
		Id:             bot.Id,
		Name:           bot.Name,
		SystemPrompt:   bot.SystemPrompt,
		WelcomeMessage: bot.WelcomeMessage,
		CreatedAt:      bot.CreatedAt,
	}
}
