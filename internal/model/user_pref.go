package model

// UserPref 用户偏好，对应 user_prefs，每个学生一条
type UserPref struct {
	PrefID             string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pref_id"`
	StudentID          string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"student_id"`
	UsualSleepTime     ClockTime `gorm:"type:time;not null"                             json:"usual_sleep_time"`
	UsualWakeTime      ClockTime `gorm:"type:time;not null"                             json:"usual_wake_time"`
	ReminderOffsetTime ClockTime `gorm:"type:time;not null"                             json:"reminder_offset_time"` // 提前提醒时长
	Timestamps
}

// TableName 指定表名
func (UserPref) TableName() string { return "user_prefs" }

// PushToken 推送设备令牌，对应 push_tokens，每个学生保留最近一次注册
type PushToken struct {
	TokenID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"token_id"`
	StudentID string `gorm:"type:uuid;not null;uniqueIndex"                 json:"student_id"`
	Token     string `gorm:"type:text;not null"                             json:"token"`
	Timestamps
}

// TableName 指定表名
func (PushToken) TableName() string { return "push_tokens" }
