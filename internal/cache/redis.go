package cache

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/foodgram-next/internal/config"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "fg"

// backend 当前生效的 redis 连接与 key 前缀；为 nil 时缓存整体关闭
type backend struct {
	client *redis.Client
	prefix string
}

var active atomic.Pointer[backend]

func normalizePrefix(prefix string) string {
	if p := strings.TrimSpace(prefix); p != "" {
		return p
	}
	return defaultKeyPrefix
}

// InitRedis 按配置连接 redis；未启用时缓存读写全部是空操作
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		active.Store(nil)
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	UseClient(redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	}), cfg.Prefix)
	return nil
}

// UseClient 替换当前连接，传 nil 时只保留前缀、缓存关闭
func UseClient(client *redis.Client, prefix string) {
	if client == nil {
		active.Store(&backend{prefix: normalizePrefix(prefix)})
		return
	}
	active.Store(&backend{client: client, prefix: normalizePrefix(prefix)})
}

func current() *backend {
	b := active.Load()
	if b == nil || b.client == nil {
		return nil
	}
	return b
}

// Enabled 是否有可用的 redis 连接
func Enabled() bool {
	return current() != nil
}

// Client 原始客户端，限流脚本等需要直接执行命令的地方使用；未启用时为 nil
func Client() *redis.Client {
	if b := current(); b != nil {
		return b.client
	}
	return nil
}

// Ping 健康检查用，未启用时视为正常
func Ping(ctx context.Context) error {
	if b := current(); b != nil {
		return b.client.Ping(ctx).Err()
	}
	return nil
}

// Close 关闭连接并停用缓存，可重复调用
func Close() error {
	b := active.Swap(nil)
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}

// GetJSON 读取并解码，key 不存在时返回 (false, nil)
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	b := current()
	if b == nil {
		return false, nil
	}
	raw, err := b.client.Get(ctx, b.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 编码后写入，ttl 为 0 表示不过期
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b := current()
	if b == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.key(key), payload, ttl).Err()
}

// Del 删除一个或多个 key
func Del(ctx context.Context, keys ...string) error {
	b := current()
	if b == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, b.key(key))
	}
	return b.client.Del(ctx, full...).Err()
}

// BuildKey 带前缀的完整 key，例如 fg:catalog:tags
func BuildKey(key string) string {
	b := active.Load()
	if b == nil {
		b = &backend{prefix: defaultKeyPrefix}
	}
	return b.key(key)
}

func (b *backend) key(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return b.prefix
	}
	return b.prefix + ":" + trimmed
}
