package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jakkusu1/planma-app/config"
)

var (
	// ErrCacheMiss 缓存未命中
	ErrCacheMiss = errors.New("缓存未命中")
	// ErrUnavailable Redis 未连接（启动时降级运行）
	ErrUnavailable = errors.New("Redis 不可用")
)

// Client Redis 客户端封装
// 用于 Token 黑名单、接口限流、仪表盘缓存与推送队列
// nil *Client 可安全调用：所有操作返回 ErrUnavailable，调用方按各自策略降级
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	if c == nil {
		return ErrUnavailable
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if c == nil {
		return false, ErrUnavailable
	}
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 限流 ──

// CheckRateLimit 滑动窗口限流：窗口内请求数不超过 limit 时返回 true
// 使用有序集合记录请求时间戳，单次 MULTI 完成清理、计数与写入
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return false, ErrUnavailable
	}
	now := time.Now()
	windowStart := now.Add(-window).UnixMicro()

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	card := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return card.Val() < int64(limit), nil
}

// ── 缓存 ──

// GetCache 读取缓存原始字节，未命中返回 ErrCacheMiss
func (c *Client) GetCache(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, ErrUnavailable
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

// SetCache 写入缓存
func (c *Client) SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil {
		return ErrUnavailable
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// ── 推送队列 ──

// Enqueue 将消息追加到队列尾部，由外部推送服务消费
func (c *Client) Enqueue(ctx context.Context, queue string, payload []byte) error {
	if c == nil {
		return ErrUnavailable
	}
	return c.rdb.RPush(ctx, queue, payload).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
