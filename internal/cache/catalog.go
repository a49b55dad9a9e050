package cache

import (
	"context"
	"time"

	"github.com/foodgram-next/internal/models"
)

const (
	tagListKey      = "catalog:tags"
	tagListCacheTTL = 30 * time.Minute
)

// GetTagList 读取标签列表缓存
func GetTagList(ctx context.Context) ([]models.Tag, bool, error) {
	var tags []models.Tag
	hit, err := GetJSON(ctx, tagListKey, &tags)
	if err != nil || !hit {
		return nil, hit, err
	}
	return tags, true, nil
}

// SetTagList 写入标签列表缓存
func SetTagList(ctx context.Context, tags []models.Tag) error {
	return SetJSON(ctx, tagListKey, tags, tagListCacheTTL)
}

// InvalidateTagList 后台修改标签后清理缓存
func InvalidateTagList(ctx context.Context) error {
	return Del(ctx, tagListKey)
}
