package repository

import (
	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository 收藏数据访问接口
type FavoriteRepository interface {
	Exists(userID, recipeID uint) (bool, error)
	Create(favorite *models.Favorite) error
	Delete(userID, recipeID uint) (int64, error)
	RecipeIDsAmong(userID uint, recipeIDs []uint) (map[uint]bool, error)
	List(filter UserRecipeListFilter) ([]models.Favorite, int64, error)
}

// ShoppingCartRepository 购物车数据访问接口
type ShoppingCartRepository interface {
	Exists(userID, recipeID uint) (bool, error)
	Create(item *models.ShoppingCart) error
	Delete(userID, recipeID uint) (int64, error)
	RecipeIDsAmong(userID uint, recipeIDs []uint) (map[uint]bool, error)
	List(filter UserRecipeListFilter) ([]models.ShoppingCart, int64, error)
	ListShoppingRows(userID uint) ([]ShoppingRow, error)
	WithTx(tx *gorm.DB) *GormShoppingCartRepository
}

// ShoppingRow 购物车内菜谱的一条食材用量
type ShoppingRow struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// userRecipeStore 收藏与购物车共用的 (user, recipe) 关系表操作
type userRecipeStore struct {
	db       *gorm.DB
	newModel func() interface{}
}

func (s userRecipeStore) exists(userID, recipeID uint) (bool, error) {
	var count int64
	if err := s.db.Model(s.newModel()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s userRecipeStore) delete(userID, recipeID uint) (int64, error) {
	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(s.newModel())
	return result.RowsAffected, result.Error
}

func (s userRecipeStore) recipeIDsAmong(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return result, nil
	}
	var ids []uint
	if err := s.db.Model(s.newModel()).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (s userRecipeStore) listQuery(filter UserRecipeListFilter) (*gorm.DB, int64, error) {
	query := s.db.Model(s.newModel())
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.RecipeID != 0 {
		query = query.Where("recipe_id = ?", filter.RecipeID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return applyPagination(query, filter.Page, filter.PageSize).Preload("Recipe").Order("id DESC"), total, nil
}

// GormFavoriteRepository GORM 实现
type GormFavoriteRepository struct {
	store userRecipeStore
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{store: userRecipeStore{db: db, newModel: func() interface{} { return &models.Favorite{} }}}
}

// Exists 判断是否已收藏
func (r *GormFavoriteRepository) Exists(userID, recipeID uint) (bool, error) {
	return r.store.exists(userID, recipeID)
}

// Create 创建收藏
func (r *GormFavoriteRepository) Create(favorite *models.Favorite) error {
	return translateWriteError(r.store.db.Omit("Recipe").Create(favorite).Error)
}

// Delete 取消收藏，返回删除行数
func (r *GormFavoriteRepository) Delete(userID, recipeID uint) (int64, error) {
	return r.store.delete(userID, recipeID)
}

// RecipeIDsAmong 返回 recipeIDs 中已被收藏的集合
func (r *GormFavoriteRepository) RecipeIDsAmong(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	return r.store.recipeIDsAmong(userID, recipeIDs)
}

// List 后台收藏列表
func (r *GormFavoriteRepository) List(filter UserRecipeListFilter) ([]models.Favorite, int64, error) {
	query, total, err := r.store.listQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	var favorites []models.Favorite
	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

// GormShoppingCartRepository GORM 实现
type GormShoppingCartRepository struct {
	store userRecipeStore
}

// NewShoppingCartRepository 创建购物车仓库
func NewShoppingCartRepository(db *gorm.DB) *GormShoppingCartRepository {
	return &GormShoppingCartRepository{store: userRecipeStore{db: db, newModel: func() interface{} { return &models.ShoppingCart{} }}}
}

// WithTx 绑定事务
func (r *GormShoppingCartRepository) WithTx(tx *gorm.DB) *GormShoppingCartRepository {
	if tx == nil {
		return r
	}
	return NewShoppingCartRepository(tx)
}

// Exists 判断菜谱是否已在购物车
func (r *GormShoppingCartRepository) Exists(userID, recipeID uint) (bool, error) {
	return r.store.exists(userID, recipeID)
}

// Create 加入购物车
func (r *GormShoppingCartRepository) Create(item *models.ShoppingCart) error {
	return translateWriteError(r.store.db.Omit("Recipe").Create(item).Error)
}

// Delete 移出购物车，返回删除行数
func (r *GormShoppingCartRepository) Delete(userID, recipeID uint) (int64, error) {
	return r.store.delete(userID, recipeID)
}

// RecipeIDsAmong 返回 recipeIDs 中已在购物车的集合
func (r *GormShoppingCartRepository) RecipeIDsAmong(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	return r.store.recipeIDsAmong(userID, recipeIDs)
}

// List 后台购物车列表
func (r *GormShoppingCartRepository) List(filter UserRecipeListFilter) ([]models.ShoppingCart, int64, error) {
	query, total, err := r.store.listQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	var items []models.ShoppingCart
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListShoppingRows 读取购物车内全部菜谱的食材用量
// 按购物车条目与用量记录的写入顺序返回，保证聚合结果顺序稳定
func (r *GormShoppingCartRepository) ListShoppingRows(userID uint) ([]ShoppingRow, error) {
	rows := make([]ShoppingRow, 0)
	err := r.store.db.Table("shopping_carts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, ingredient_amounts.amount AS amount").
		// 不经过 recipes 表：删除菜谱时购物车与用量记录同时被清理
		Joins("JOIN ingredient_amounts ON ingredient_amounts.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Order("shopping_carts.id ASC").
		Order("ingredient_amounts.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
