package service

import (
	"github.com/warrior-ram/demo-ai-chatbot/internal/config"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/request"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/dto/respond"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/util/myjwt"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/xerr"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"
)

type AuthService interface {
	// Login 管理端登录，校验通过后签发 JWT
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
}

type authServiceImpl struct {
	adminUser     string
	adminPassword string
}

func NewAuthService(conf *config.Config) AuthService {
	return &authServiceImpl{
		adminUser:     conf.JwtConfig.AdminUser,
		adminPassword: conf.JwtConfig.AdminPassword,
	}
}

func (s *authServiceImpl) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	if req.Username != s.adminUser || req.Password != s.adminPassword {
		return nil, xerr.ErrAuthFailed
	}

	token, err := myjwt.GenerateToken(req.Username, "admin")
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return &respond.LoginRespond{Token: token}, nil
}
