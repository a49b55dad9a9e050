package queue

import (
	"github.com/foodgram-next/internal/constants"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const (
	// TaskRecipePublishedNotify 新菜谱发布后向关注者扇出通知
	TaskRecipePublishedNotify = constants.TaskRecipePublishedNotify
	// TaskFollowerRecipeEmail 向单个关注者发送新菜谱邮件
	TaskFollowerRecipeEmail = constants.TaskFollowerRecipeEmail
)

// RecipePublishedPayload 新菜谱通知任务载荷
type RecipePublishedPayload struct {
	RecipeID uint   `json:"recipe_id"`
	AuthorID uint   `json:"author_id"`
	Locale   string `json:"locale"`
}

// FollowerRecipeEmailPayload 单个关注者邮件任务载荷
type FollowerRecipeEmailPayload struct {
	RecipeID   uint   `json:"recipe_id"`
	FollowerID uint   `json:"follower_id"`
	Locale     string `json:"locale"`
}

// NewRecipePublishedTask 创建新菜谱通知任务
func NewRecipePublishedTask(payload RecipePublishedPayload) (*asynq.Task, error) {
	return newTask(TaskRecipePublishedNotify, payload)
}

// NewFollowerRecipeEmailTask 创建关注者邮件任务
func NewFollowerRecipeEmailTask(payload FollowerRecipeEmailPayload) (*asynq.Task, error) {
	return newTask(TaskFollowerRecipeEmail, payload)
}

// DecodePayload 解析任务载荷
func DecodePayload(task *asynq.Task, dest interface{}) error {
	return json.Unmarshal(task.Payload(), dest)
}

func newTask(typename string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typename, body, asynq.MaxRetry(constants.FollowerNotifyMaxRetry)), nil
}
