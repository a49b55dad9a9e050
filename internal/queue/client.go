package queue

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 未配置 queues 时唯一的队列
	DefaultQueue = constants.QueueDefault

	defaultConcurrency = 10
	emailTaskTimeout   = 30 * time.Second
	taskRetention      = 24 * time.Hour
)

// Client asynq 投递端；队列关闭时所有 Enqueue 直接返回 nil
type Client struct {
	client *asynq.Client
}

// NewClient 队列未启用时返回一个空操作的 Client，而不是 nil
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 是否真正连接了 redis
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 可对关闭状态的 Client 调用
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueRecipePublished 菜谱发布后延迟 delay 扇出通知；TaskID 按菜谱去重，重复发布只通知一次
func (c *Client) EnqueueRecipePublished(payload RecipePublishedPayload, delay time.Duration) error {
	task, err := NewRecipePublishedTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task,
		asynq.ProcessIn(max(delay, 0)),
		asynq.TaskID(fmt.Sprintf("recipe-published:%d", payload.RecipeID)),
	)
}

// EnqueueFollowerRecipeEmail 给单个关注者的邮件，按 (菜谱, 关注者) 去重
func (c *Client) EnqueueFollowerRecipeEmail(payload FollowerRecipeEmailPayload) error {
	task, err := NewFollowerRecipeEmailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task,
		asynq.Timeout(emailTaskTimeout),
		asynq.TaskID(fmt.Sprintf("recipe-email:%d:%d", payload.RecipeID, payload.FollowerID)),
	)
}

func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	opts = append([]asynq.Option{asynq.Queue(DefaultQueue), asynq.Retention(taskRetention)}, opts...)
	_, err := c.client.Enqueue(task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// BuildServerConfig 消费端的 redis 连接与并发、队列权重
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1},
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	return opt
}
