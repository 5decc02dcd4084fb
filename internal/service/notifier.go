package service

import (
	"context"
	"encoding/json"
	"time"
)

// PushMessage 推送队列消息
type PushMessage struct {
	StudentID string    `json:"student_id"`
	Token     string    `json:"token"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	QueuedAt  time.Time `json:"queued_at"`
}

// Notifier 推送通知出口
type Notifier interface {
	Send(ctx context.Context, msg PushMessage) error
}

// Enqueuer 消息队列写入端，由 Redis 客户端实现
type Enqueuer interface {
	Enqueue(ctx context.Context, queue string, payload []byte) error
}

// QueueNotifier 将推送消息写入队列，由独立的推送服务消费投递
type QueueNotifier struct {
	queue string
	q     Enqueuer
	now   func() time.Time
}

// NewQueueNotifier 创建基于队列的 Notifier
func NewQueueNotifier(q Enqueuer, queue string) *QueueNotifier {
	return &QueueNotifier{queue: queue, q: q, now: time.Now}
}

// Send 序列化后入队
func (n *QueueNotifier) Send(ctx context.Context, msg PushMessage) error {
	msg.QueuedAt = n.now().UTC()
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.q.Enqueue(ctx, n.queue, payload)
}
