package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

var (
	tagSlugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// TagService 标签业务服务
type TagService struct {
	repo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

// TagInput 创建/更新标签输入
type TagInput struct {
	Name  string
	Color string
	Slug  string
}

// List 获取全部标签，优先读取缓存
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	if tags, hit, err := cache.GetTagList(ctx); err == nil && hit {
		return tags, nil
	} else if err != nil {
		logger.Warnw("tag_cache_read_failed", "error", err)
	}
	tags, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetTagList(ctx, tags); err != nil {
		logger.Warnw("tag_cache_write_failed", "error", err)
	}
	return tags, nil
}

// Get 获取标签
func (s *TagService) Get(id uint) (*models.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// Create 创建标签
func (s *TagService) Create(ctx context.Context, input TagInput) (*models.Tag, error) {
	tag := &models.Tag{}
	if err := applyTagInput(tag, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	s.invalidate(ctx)
	return tag, nil
}

// Update 更新标签
func (s *TagService) Update(ctx context.Context, id uint, input TagInput) (*models.Tag, error) {
	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyTagInput(tag, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	s.invalidate(ctx)
	return tag, nil
}

// Delete 删除标签，同时解除与菜谱的关联
func (s *TagService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TagService) invalidate(ctx context.Context) {
	if err := cache.InvalidateTagList(ctx); err != nil {
		logger.Warnw("tag_cache_invalidate_failed", "error", err)
	}
}

func applyTagInput(tag *models.Tag, input TagInput) error {
	name := strings.TrimSpace(input.Name)
	color := strings.ToUpper(strings.TrimSpace(input.Color))
	slug := strings.TrimSpace(input.Slug)
	if name == "" || len([]rune(name)) > constants.TagNameMaxLength {
		return newValidationError("error.tag_name_invalid", ErrTagInvalid)
	}
	if !tagColorPattern.MatchString(color) {
		return newValidationError("error.tag_color_invalid", ErrTagInvalid)
	}
	if slug == "" || len(slug) > constants.TagNameMaxLength || !tagSlugPattern.MatchString(slug) {
		return newValidationError("error.tag_slug_invalid", ErrTagInvalid)
	}
	tag.Name = name
	tag.Color = color
	tag.Slug = slug
	return nil
}

// IsValidTagSlug 校验标签 slug 字符集
func IsValidTagSlug(slug string) bool {
	return tagSlugPattern.MatchString(slug)
}
