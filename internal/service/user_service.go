package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/dto"
	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// ── 用户偏好业务错误 ──

var (
	ErrUserPrefNotFound  = fmt.Errorf("用户偏好不存在: %w", pkgerrors.ErrNotFound)
	ErrUserPrefExists    = fmt.Errorf("用户偏好已存在: %w", pkgerrors.ErrDuplicate)
	ErrPushTokenNotFound = fmt.Errorf("尚未注册推送令牌: %w", pkgerrors.ErrNotFound)
)

// 测试推送的默认文案
const (
	defaultPushTitle = "Planma"
	defaultPushBody  = "推送通知已启用"
)

// UserService 用户偏好与推送令牌业务接口
type UserService interface {
	CreatePref(ctx context.Context, req *dto.UserPrefRequest, studentID string) (*dto.UserPrefResponse, error)
	GetPref(ctx context.Context, studentID string) (*dto.UserPrefResponse, error)
	UpdatePref(ctx context.Context, id string, req *dto.UserPrefRequest, studentID string) (*dto.UserPrefResponse, error)
	DeletePref(ctx context.Context, id, studentID string) error

	RegisterPushToken(ctx context.Context, req *dto.RegisterPushTokenRequest, studentID string) (*dto.PushTokenResponse, error)
	TestPush(ctx context.Context, req *dto.TestPushRequest, studentID string) error
}

type userService struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, notifier Notifier, logger *zap.Logger) UserService {
	return &userService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── 用户偏好 ──────────────────────

// CreatePref 每个学生只有一条偏好
func (s *userService) CreatePref(ctx context.Context, req *dto.UserPrefRequest, studentID string) (*dto.UserPrefResponse, error) {
	pref := &model.UserPref{StudentID: studentID}
	if err := applyPref(pref, req); err != nil {
		return nil, err
	}
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}

	_, err := s.repo.UserPref.GetByStudent(ctx, studentID)
	switch {
	case err == nil:
		return nil, ErrUserPrefExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("查询用户偏好失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.UserPref.Create(ctx, pref); err != nil {
		logUnexpected(s.logger, "创建用户偏好失败", err)
		return nil, err
	}
	return toUserPrefResponse(pref), nil
}

func (s *userService) GetPref(ctx context.Context, studentID string) (*dto.UserPrefResponse, error) {
	pref, err := s.repo.UserPref.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserPrefNotFound)
	}
	return toUserPrefResponse(pref), nil
}

func (s *userService) UpdatePref(ctx context.Context, id string, req *dto.UserPrefRequest, studentID string) (*dto.UserPrefResponse, error) {
	pref, err := s.ownedPref(ctx, id, studentID)
	if err != nil {
		return nil, err
	}
	if err := applyPref(pref, req); err != nil {
		return nil, err
	}

	if err := s.repo.UserPref.Update(ctx, pref); err != nil {
		logUnexpected(s.logger, "更新用户偏好失败", err, zap.String("id", id))
		return nil, err
	}
	return toUserPrefResponse(pref), nil
}

func (s *userService) DeletePref(ctx context.Context, id, studentID string) error {
	pref, err := s.ownedPref(ctx, id, studentID)
	if err != nil {
		return err
	}
	if err := s.repo.UserPref.Delete(ctx, pref.PrefID); err != nil {
		s.logger.Error("删除用户偏好失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 推送令牌 ──────────────────────

// RegisterPushToken 同一学生重复注册时覆盖旧令牌
func (s *userService) RegisterPushToken(ctx context.Context, req *dto.RegisterPushTokenRequest, studentID string) (*dto.PushTokenResponse, error) {
	if err := requireStudent(ctx, s.repo, studentID); err != nil {
		return nil, err
	}

	token := &model.PushToken{StudentID: studentID, Token: req.Token}
	if err := s.repo.PushToken.Upsert(ctx, token); err != nil {
		logUnexpected(s.logger, "注册推送令牌失败", err)
		return nil, err
	}

	s.logger.Info("推送令牌已注册", zap.String("student_id", studentID))
	return &dto.PushTokenResponse{
		TokenID:   token.TokenID,
		Token:     token.Token,
		UpdatedAt: formatTimestamp(token.UpdatedAt),
	}, nil
}

// TestPush 向已注册的设备发送一条测试通知
func (s *userService) TestPush(ctx context.Context, req *dto.TestPushRequest, studentID string) error {
	token, err := s.repo.PushToken.GetByStudent(ctx, studentID)
	if err != nil {
		return notFoundOr(err, ErrPushTokenNotFound)
	}

	msg := PushMessage{
		StudentID: studentID,
		Token:     token.Token,
		Title:     defaultPushTitle,
		Body:      defaultPushBody,
	}
	if req != nil && req.Title != "" {
		msg.Title = req.Title
	}
	if req != nil && req.Body != "" {
		msg.Body = req.Body
	}

	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error("发送测试推送失败", zap.String("student_id", studentID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *userService) ownedPref(ctx context.Context, id, studentID string) (*model.UserPref, error) {
	pref, err := s.repo.UserPref.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrUserPrefNotFound)
	}
	if err := ensureOwner(pref.StudentID, studentID); err != nil {
		return nil, err
	}
	return pref, nil
}

func applyPref(pref *model.UserPref, req *dto.UserPrefRequest) error {
	var err error
	if pref.UsualSleepTime, err = model.ParseClock(req.UsualSleepTime); err != nil {
		return err
	}
	if pref.UsualWakeTime, err = model.ParseClock(req.UsualWakeTime); err != nil {
		return err
	}
	pref.ReminderOffsetTime, err = model.ParseClock(req.ReminderOffsetTime)
	return err
}

func toUserPrefResponse(p *model.UserPref) *dto.UserPrefResponse {
	return &dto.UserPrefResponse{
		PrefID:             p.PrefID,
		UsualSleepTime:     p.UsualSleepTime.String(),
		UsualWakeTime:      p.UsualWakeTime.String(),
		ReminderOffsetTime: p.ReminderOffsetTime.String(),
	}
}
