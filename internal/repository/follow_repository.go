package repository

import (
	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// FollowRepository 关注关系数据访问接口
type FollowRepository interface {
	Exists(userID, authorID uint) (bool, error)
	Create(follow *models.Follow) error
	Delete(userID, authorID uint) (int64, error)
	ListAuthorIDs(userID uint, page, pageSize int) ([]uint, int64, error)
	FollowedAmong(userID uint, authorIDs []uint) (map[uint]bool, error)
	List(filter FollowListFilter) ([]models.Follow, int64, error)
	CountFollowers(authorID uint) (int64, error)
	ListFollowersAfter(authorID uint, afterID uint, limit int) ([]models.Follow, error)
}

// GormFollowRepository GORM 实现
type GormFollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository 创建关注仓库
func NewFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Exists 判断是否已关注
func (r *GormFollowRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建关注
func (r *GormFollowRepository) Create(follow *models.Follow) error {
	return translateWriteError(r.db.Create(follow).Error)
}

// Delete 取消关注，返回删除行数
func (r *GormFollowRepository) Delete(userID, authorID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	return result.RowsAffected, result.Error
}

// ListAuthorIDs 分页获取用户关注的作者 ID（按关注先后）
func (r *GormFollowRepository) ListAuthorIDs(userID uint, page, pageSize int) ([]uint, int64, error) {
	query := r.db.Model(&models.Follow{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint
	if err := applyPagination(query, page, pageSize).Order("id ASC").Pluck("author_id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

// FollowedAmong 返回 authorIDs 中已被 userID 关注的集合
func (r *GormFollowRepository) FollowedAmong(userID uint, authorIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return result, nil
	}
	var ids []uint
	if err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// List 后台关注关系列表
func (r *GormFollowRepository) List(filter FollowListFilter) ([]models.Follow, int64, error) {
	query := r.db.Model(&models.Follow{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	return listPage[models.Follow](query, filter.Page, filter.PageSize,
		preload("User", "Author"), orderBy("id DESC"))
}

// CountFollowers 统计作者的关注者数量
func (r *GormFollowRepository) CountFollowers(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// ListFollowersAfter 按 follow.id 游标分批获取关注记录（仅 id 与 user_id）
func (r *GormFollowRepository) ListFollowersAfter(authorID uint, afterID uint, limit int) ([]models.Follow, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.Follow
	if err := r.db.Select("id", "user_id").
		Where("author_id = ? AND id > ?", authorID, afterID).
		Order("id ASC").Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
