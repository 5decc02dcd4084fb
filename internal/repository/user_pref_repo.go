package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakkusu1/planma-app/internal/model"
)

// UserPrefRepository 用户偏好数据访问接口
type UserPrefRepository interface {
	Create(ctx context.Context, pref *model.UserPref) error
	GetByID(ctx context.Context, id string) (*model.UserPref, error)
	GetByStudent(ctx context.Context, studentID string) (*model.UserPref, error)
	Update(ctx context.Context, pref *model.UserPref) error
	Delete(ctx context.Context, id string) error
}

type userPrefRepo struct {
	db *gorm.DB
}

// NewUserPrefRepo 创建 UserPrefRepository 实例
func NewUserPrefRepo(db *gorm.DB) UserPrefRepository {
	return &userPrefRepo{db: db}
}

func (r *userPrefRepo) Create(ctx context.Context, pref *model.UserPref) error {
	return translateError(r.db.WithContext(ctx).Create(pref).Error)
}

func (r *userPrefRepo) GetByID(ctx context.Context, id string) (*model.UserPref, error) {
	var pref model.UserPref
	if err := r.db.WithContext(ctx).Where("pref_id = ?", id).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *userPrefRepo) GetByStudent(ctx context.Context, studentID string) (*model.UserPref, error) {
	var pref model.UserPref
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *userPrefRepo) Update(ctx context.Context, pref *model.UserPref) error {
	return translateError(r.db.WithContext(ctx).Save(pref).Error)
}

func (r *userPrefRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("pref_id = ?", id).Delete(&model.UserPref{}).Error
}

// ── PushToken ──

// PushTokenRepository 推送令牌数据访问接口
type PushTokenRepository interface {
	// Upsert 每个学生只保留一条，重复注册时覆盖 token
	Upsert(ctx context.Context, token *model.PushToken) error
	GetByStudent(ctx context.Context, studentID string) (*model.PushToken, error)
}

type pushTokenRepo struct {
	db *gorm.DB
}

// NewPushTokenRepo 创建 PushTokenRepository 实例
func NewPushTokenRepo(db *gorm.DB) PushTokenRepository {
	return &pushTokenRepo{db: db}
}

func (r *pushTokenRepo) Upsert(ctx context.Context, token *model.PushToken) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
		}).
		Create(token).Error
	return translateError(err)
}

func (r *pushTokenRepo) GetByStudent(ctx context.Context, studentID string) (*model.PushToken, error) {
	var token model.PushToken
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
