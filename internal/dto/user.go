package dto

// ── 用户偏好 / 推送 DTO ──

// UserPrefRequest 创建或整体更新用户偏好
type UserPrefRequest struct {
	UsualSleepTime     string `json:"usual_sleep_time"     binding:"required,clock"`
	UsualWakeTime      string `json:"usual_wake_time"      binding:"required,clock"`
	ReminderOffsetTime string `json:"reminder_offset_time" binding:"required,clock"`
}

// UserPrefResponse 用户偏好响应
type UserPrefResponse struct {
	PrefID             string `json:"pref_id"`
	UsualSleepTime     string `json:"usual_sleep_time"`
	UsualWakeTime      string `json:"usual_wake_time"`
	ReminderOffsetTime string `json:"reminder_offset_time"`
}

// RegisterPushTokenRequest 注册设备推送令牌
type RegisterPushTokenRequest struct {
	Token string `json:"token" binding:"required,max=4096"`
}

// TestPushRequest 测试推送
type TestPushRequest struct {
	Title string `json:"title" binding:"omitempty,max=100"`
	Body  string `json:"body"  binding:"omitempty,max=500"`
}

// PushTokenResponse 推送令牌响应
type PushTokenResponse struct {
	TokenID   string `json:"token_id"`
	Token     string `json:"token"`
	UpdatedAt string `json:"updated_at"`
}
