package repository

import (
	"strings"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository 食材数据访问接口
type IngredientRepository interface {
	List(filter IngredientListFilter) ([]models.Ingredient, int64, error)
	GetByID(id uint) (*models.Ingredient, error)
	GetByNameAndUnit(name, unit string) (*models.Ingredient, error)
	ListByIDs(ids []uint) ([]models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
	Update(ingredient *models.Ingredient) error
	Delete(id uint) error
	CountUsage(id uint) (int64, error)
}

// GormIngredientRepository GORM 实现
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建食材仓库
func NewIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// List 食材列表，按名称排序；PageSize 为 0 时不分页
func (r *GormIngredientRepository) List(filter IngredientListFilter) ([]models.Ingredient, int64, error) {
	query := r.db.Model(&models.Ingredient{})
	if prefix := strings.TrimSpace(filter.NamePrefix); prefix != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name"})
		query = query.Where(condition, repeatLikeArgs(prefixPattern(prefix), argCount)...)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(keyword), argCount)...)
	}
	return listPage[models.Ingredient](query, filter.Page, filter.PageSize, orderBy("name ASC", "id ASC"))
}

// GetByID 获取食材
func (r *GormIngredientRepository) GetByID(id uint) (*models.Ingredient, error) {
	return findOne[models.Ingredient](r.db, id)
}

// GetByNameAndUnit 按名称与单位获取食材
func (r *GormIngredientRepository) GetByNameAndUnit(name, unit string) (*models.Ingredient, error) {
	return findOne[models.Ingredient](r.db.Where("name = ? AND measurement_unit = ?", name, unit))
}

// ListByIDs 批量获取食材
func (r *GormIngredientRepository) ListByIDs(ids []uint) ([]models.Ingredient, error) {
	return findByIDs[models.Ingredient](r.db, ids)
}

// Create 创建食材
func (r *GormIngredientRepository) Create(ingredient *models.Ingredient) error {
	return translateWriteError(r.db.Create(ingredient).Error)
}

// Update 更新食材
func (r *GormIngredientRepository) Update(ingredient *models.Ingredient) error {
	return translateWriteError(r.db.Save(ingredient).Error)
}

// Delete 删除食材
func (r *GormIngredientRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ingredient{}, id).Error
}

// CountUsage 统计引用该食材的菜谱数量
func (r *GormIngredientRepository) CountUsage(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.IngredientAmount{}).Where("ingredient_id = ?", id).Count(&count).Error
	return count, err
}
