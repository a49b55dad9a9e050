package repository

import (
	"strings"
	"time"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository 菜谱数据访问接口
type RecipeRepository interface {
	GetByID(id uint) (*models.Recipe, error)
	Exists(id uint) (bool, error)
	List(filter RecipeListFilter) ([]models.Recipe, int64, error)
	ListByAuthor(authorID uint, limit int) ([]models.Recipe, error)
	CountByAuthors(authorIDs []uint) (map[uint]int64, error)
	CountFavorites(recipeIDs []uint) (map[uint]int64, error)
	Create(recipe *models.Recipe, tagIDs []uint, amounts []models.IngredientAmount) error
	Update(recipe *models.Recipe, tagIDs []uint, amounts []models.IngredientAmount) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormRecipeRepository
}

// GormRecipeRepository GORM 实现
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 创建菜谱仓库
func NewRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRecipeRepository) WithTx(tx *gorm.DB) *GormRecipeRepository {
	if tx == nil {
		return r
	}
	return &GormRecipeRepository{db: tx}
}

// withDetails 预加载作者、标签与食材用量
func withDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.id ASC")
		}).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredient_amounts.id ASC")
		}).
		Preload("Ingredients.Ingredient")
}

// GetByID 获取菜谱详情
func (r *GormRecipeRepository) GetByID(id uint) (*models.Recipe, error) {
	if id == 0 {
		return nil, nil
	}
	return findOne[models.Recipe](withDetails(r.db), id)
}

// Exists 判断菜谱是否存在
func (r *GormRecipeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 菜谱列表，按发布时间倒序
func (r *GormRecipeRepository) List(filter RecipeListFilter) ([]models.Recipe, int64, error) {
	query := r.db.Model(&models.Recipe{})
	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if slugs := normalizeSlugs(filter.TagSlugs); len(slugs) > 0 {
		query = query.Where("recipes.id IN (?)", r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", slugs))
	}
	if filter.FavoritedBy != 0 {
		query = query.Where("recipes.id IN (?)", r.db.Model(&models.Favorite{}).
			Select("recipe_id").Where("user_id = ?", filter.FavoritedBy))
	}
	if filter.InCartOf != 0 {
		query = query.Where("recipes.id IN (?)", r.db.Model(&models.ShoppingCart{}).
			Select("recipe_id").Where("user_id = ?", filter.InCartOf))
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"recipes.name"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(name), argCount)...)
	}
	return listPage[models.Recipe](query, filter.Page, filter.PageSize,
		withDetails, orderBy("recipes.pub_date DESC", "recipes.id DESC"))
}

// ListByAuthor 获取作者最新的菜谱摘要，limit <= 0 表示不限制
func (r *GormRecipeRepository) ListByAuthor(authorID uint, limit int) ([]models.Recipe, error) {
	query := r.db.Select("id", "author_id", "name", "image", "cooking_time", "pub_date").
		Where("author_id = ?", authorID).
		Order("pub_date DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

type groupCount struct {
	GroupKey uint
	Total    int64
}

// CountByAuthors 统计作者菜谱数量
func (r *GormRecipeRepository) CountByAuthors(authorIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}
	var rows []groupCount
	if err := r.db.Model(&models.Recipe{}).
		Select("author_id AS group_key, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.GroupKey] = row.Total
	}
	return result, nil
}

// CountFavorites 统计菜谱被收藏次数
func (r *GormRecipeRepository) CountFavorites(recipeIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}
	var rows []groupCount
	if err := r.db.Model(&models.Favorite{}).
		Select("recipe_id AS group_key, COUNT(*) AS total").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.GroupKey] = row.Total
	}
	return result, nil
}

// Create 创建菜谱并写入标签与食材用量
func (r *GormRecipeRepository) Create(recipe *models.Recipe, tagIDs []uint, amounts []models.IngredientAmount) error {
	if recipe == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if recipe.PubDate.IsZero() {
			recipe.PubDate = time.Now()
		}
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := replaceRecipeTags(tx, recipe.ID, tagIDs); err != nil {
			return err
		}
		return replaceIngredientAmounts(tx, recipe.ID, amounts)
	})
}

// Update 更新菜谱字段，并整体替换标签与食材用量
func (r *GormRecipeRepository) Update(recipe *models.Recipe, tagIDs []uint, amounts []models.IngredientAmount) error {
	if recipe == nil || recipe.ID == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{ID: recipe.ID}).
			Select("name", "image", "text", "cooking_time", "updated_at").
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"image":        recipe.Image,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}
		if err := replaceRecipeTags(tx, recipe.ID, tagIDs); err != nil {
			return err
		}
		return replaceIngredientAmounts(tx, recipe.ID, amounts)
	})
}

// Delete 删除菜谱及其关联数据
func (r *GormRecipeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientAmount{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

func replaceRecipeTags(tx *gorm.DB, recipeID uint, tagIDs []uint) error {
	if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, map[string]interface{}{
			"recipe_id": recipeID,
			"tag_id":    tagID,
		})
	}
	return translateWriteError(tx.Table("recipe_tags").Create(rows).Error)
}

func replaceIngredientAmounts(tx *gorm.DB, recipeID uint, amounts []models.IngredientAmount) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.IngredientAmount{}).Error; err != nil {
		return err
	}
	if len(amounts) == 0 {
		return nil
	}
	rows := make([]models.IngredientAmount, 0, len(amounts))
	for _, amount := range amounts {
		rows = append(rows, models.IngredientAmount{
			RecipeID:     recipeID,
			IngredientID: amount.IngredientID,
			Amount:       amount.Amount,
		})
	}
	return translateWriteError(tx.Omit(clause.Associations).Create(&rows).Error)
}

func normalizeSlugs(slugs []string) []string {
	result := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if trimmed := strings.TrimSpace(slug); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
