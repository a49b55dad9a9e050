package repository

import (

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// TagRepository 标签数据访问接口
type TagRepository interface {
	List() ([]models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	ListByIDs(ids []uint) ([]models.Tag, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error
	Delete(id uint) error
	CountRecipes(id uint) (int64, error)
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// List 获取全部标签，按 ID 排序
func (r *GormTagRepository) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetByID 获取标签
func (r *GormTagRepository) GetByID(id uint) (*models.Tag, error) {
	return findOne[models.Tag](r.db, id)
}

// ListByIDs 批量获取标签
func (r *GormTagRepository) ListByIDs(ids []uint) ([]models.Tag, error) {
	return findByIDs[models.Tag](r.db, ids)
}

// Create 创建标签
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return translateWriteError(r.db.Create(tag).Error)
}

// Update 更新标签
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return translateWriteError(r.db.Save(tag).Error)
}

// Delete 删除标签并清理菜谱关联
func (r *GormTagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

// CountRecipes 统计使用该标签的菜谱数量
func (r *GormTagRepository) CountRecipes(id uint) (int64, error) {
	var count int64
	err := r.db.Table("recipe_tags").Where("tag_id = ?", id).Count(&count).Error
	return count, err
}
