package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenBlacklist 令牌黑名单，由 Redis 客户端实现
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
// 令牌由账号服务签发，本服务只负责注销：把 jti 加入黑名单直至令牌过期
type AuthService interface {
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	blacklist TokenBlacklist
	now       func() time.Time
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(blacklist TokenBlacklist, logger *zap.Logger) AuthService {
	return &authService{blacklist: blacklist, now: time.Now, logger: logger}
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	ttl := expiresAt.Sub(s.now())
	if err := s.blacklist.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("加入令牌黑名单失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}
