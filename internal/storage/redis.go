package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"career-match-go/internal/config"
	"career-match-go/internal/constants"
)

// ErrNotFound is returned when a key is not found in Redis.
// It wraps the underlying redis.Nil error for abstraction.
var ErrNotFound = redis.Nil

// Redis wraps the Redis client
// 承载排序引擎的两个包装层关注点：结果缓存与每用户配额
type Redis struct {
	Client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisAdapter creates a new Redis client connection
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}
	if cfg.DialTimeoutSeconds > 0 {
		opt.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}
	if cfg.ReadTimeoutSeconds > 0 {
		opt.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		opt.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}

	client := redis.NewClient(opt)

	// 注册OpenTelemetry追踪钩子
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("注册Redis追踪钩子失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败 (%s): %w", cfg.Address, err)
	}

	return &Redis{Client: client, cfg: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

// ConsumeRankQuota 原子消耗一次当日排序配额
// 返回false表示配额已耗尽；dailyLimit<=0时不限制
func (r *Redis) ConsumeRankQuota(ctx context.Context, userID string, dailyLimit int) (bool, error) {
	if dailyLimit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf(constants.KeyRankQuota, userID, time.Now().Format("20060102"))
	count, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("递增配额计数失败: %w", err)
	}

	// 首次计数时设置过期，计数随自然日滚动
	if count == 1 {
		if err := r.Client.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
			return false, fmt.Errorf("设置配额过期失败: %w", err)
		}
	}

	return count <= int64(dailyLimit), nil
}

// GetCachedRankResult 读取排序结果缓存，未命中返回ErrNotFound
func (r *Redis) GetCachedRankResult(ctx context.Context, kind, profileID, candidatesMD5 string) (string, error) {
	key := fmt.Sprintf(constants.KeyRankCache, kind, profileID, candidatesMD5)
	return r.Client.Get(ctx, key).Result()
}

// CacheRankResult 写入排序结果缓存
func (r *Redis) CacheRankResult(ctx context.Context, kind, profileID, candidatesMD5, payload string, ttl time.Duration) error {
	key := fmt.Sprintf(constants.KeyRankCache, kind, profileID, candidatesMD5)
	return r.Client.Set(ctx, key, payload, ttl).Err()
}

// GetProfileIDByTextMD5 通过原始文本MD5查找画像ID，未命中返回ErrNotFound
func (r *Redis) GetProfileIDByTextMD5(ctx context.Context, md5sum string) (string, error) {
	key := fmt.Sprintf(constants.KeyTextMD5ToProfileID, md5sum)
	return r.Client.Get(ctx, key).Result()
}

// SetProfileIDForTextMD5 记录原始文本MD5到画像ID的映射
func (r *Redis) SetProfileIDForTextMD5(ctx context.Context, md5sum, profileID string, ttl time.Duration) error {
	key := fmt.Sprintf(constants.KeyTextMD5ToProfileID, md5sum)
	return r.Client.Set(ctx, key, profileID, ttl).Err()
}
