package repository

import (
	"fmt"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetDailyCounts(startAt, endAt time.Time) ([]DashboardTrendRow, error)
	GetTopRecipes(startAt, endAt time.Time, limit int) ([]DashboardRecipeRankingRow, error)
	GetTopAuthors(startAt, endAt time.Time, limit int) ([]DashboardAuthorRankingRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	UsersTotal         int64
	NewUsers           int64
	ActiveUsers        int64
	RecipesTotal       int64
	NewRecipes         int64
	TagsTotal          int64
	IngredientsTotal   int64
	FollowsTotal       int64
	NewFollows         int64
	FavoritesTotal     int64
	NewFavorites       int64
	ShoppingCartsTotal int64
	LoginsFailed       int64
}

// DashboardTrendRow 单日统计
type DashboardTrendRow struct {
	Day       string
	NewUsers  int64
	Recipes   int64
	Favorites int64
}

// DashboardRecipeRankingRow 菜谱排行原始行
type DashboardRecipeRankingRow struct {
	RecipeID  uint
	Name      string
	AuthorID  uint
	Favorites int64
	Carts     int64
}

// DashboardAuthorRankingRow 作者排行原始行
type DashboardAuthorRankingRow struct {
	AuthorID     uint
	Username     string
	NewFollowers int64
	Recipes      int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	totals := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &result.UsersTotal},
		{&models.Recipe{}, &result.RecipesTotal},
		{&models.Tag{}, &result.TagsTotal},
		{&models.Ingredient{}, &result.IngredientsTotal},
		{&models.Follow{}, &result.FollowsTotal},
		{&models.Favorite{}, &result.FavoritesTotal},
		{&models.ShoppingCart{}, &result.ShoppingCartsTotal},
	}
	for _, item := range totals {
		if err := r.db.Model(item.model).Count(item.dest).Error; err != nil {
			return result, err
		}
	}

	windowed := []struct {
		model  interface{}
		column string
		dest   *int64
	}{
		{&models.User{}, "created_at", &result.NewUsers},
		{&models.Recipe{}, "pub_date", &result.NewRecipes},
		{&models.Follow{}, "created_at", &result.NewFollows},
		{&models.Favorite{}, "created_at", &result.NewFavorites},
	}
	for _, item := range windowed {
		query := fmt.Sprintf("%s >= ? AND %s < ?", item.column, item.column)
		if err := r.db.Model(item.model).Where(query, startAt, endAt).Count(item.dest).Error; err != nil {
			return result, err
		}
	}

	loginBase := func() *gorm.DB {
		return r.db.Model(&models.UserLoginLog{}).Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}
	if err := loginBase().
		Where("status = ? AND user_id > 0", constants.LoginLogStatusSuccess).
		Distinct("user_id").
		Count(&result.ActiveUsers).Error; err != nil {
		return result, err
	}
	if err := loginBase().
		Where("status = ?", constants.LoginLogStatusFailed).
		Count(&result.LoginsFailed).Error; err != nil {
		return result, err
	}
	return result, nil
}

type dayCountRow struct {
	Day   string
	Total int64
}

func (r *GormDashboardRepository) countByDay(model interface{}, column string, startAt, endAt time.Time) (map[string]int64, error) {
	var rows []dayCountRow
	dayExpr := fmt.Sprintf("CAST(date(%s) AS TEXT)", column)
	if err := r.db.Model(model).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total", dayExpr)).
		Where(fmt.Sprintf("%s >= ? AND %s < ?", column, column), startAt, endAt).
		Group(dayExpr).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Day] = row.Total
	}
	return result, nil
}

// GetDailyCounts 按天统计新用户、新菜谱与新收藏，仅返回有数据的日期
func (r *GormDashboardRepository) GetDailyCounts(startAt, endAt time.Time) ([]DashboardTrendRow, error) {
	users, err := r.countByDay(&models.User{}, "created_at", startAt, endAt)
	if err != nil {
		return nil, err
	}
	recipes, err := r.countByDay(&models.Recipe{}, "pub_date", startAt, endAt)
	if err != nil {
		return nil, err
	}
	favorites, err := r.countByDay(&models.Favorite{}, "created_at", startAt, endAt)
	if err != nil {
		return nil, err
	}

	days := make(map[string]struct{})
	for _, source := range []map[string]int64{users, recipes, favorites} {
		for day := range source {
			days[day] = struct{}{}
		}
	}
	rows := make([]DashboardTrendRow, 0, len(days))
	for day := range days {
		rows = append(rows, DashboardTrendRow{
			Day:       day,
			NewUsers:  users[day],
			Recipes:   recipes[day],
			Favorites: favorites[day],
		})
	}
	return rows, nil
}

// GetTopRecipes 窗口内被收藏最多的菜谱
func (r *GormDashboardRepository) GetTopRecipes(startAt, endAt time.Time, limit int) ([]DashboardRecipeRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []DashboardRecipeRankingRow
	cartCount := r.db.Model(&models.ShoppingCart{}).
		Select("COUNT(*)").
		Where("shopping_carts.recipe_id = recipes.id")
	err := r.db.Table("favorites").
		Select("recipes.id as recipe_id, recipes.name as name, recipes.author_id as author_id, COUNT(favorites.id) as favorites, (?) as carts", cartCount).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Where("favorites.created_at >= ? AND favorites.created_at < ?", startAt, endAt).
		Group("recipes.id, recipes.name, recipes.author_id").
		Order("favorites DESC, recipes.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// GetTopAuthors 窗口内新增订阅者最多的作者
func (r *GormDashboardRepository) GetTopAuthors(startAt, endAt time.Time, limit int) ([]DashboardAuthorRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []DashboardAuthorRankingRow
	recipeCount := r.db.Model(&models.Recipe{}).
		Select("COUNT(*)").
		Where("recipes.author_id = users.id")
	err := r.db.Table("follows").
		Select("users.id as author_id, users.username as username, COUNT(follows.id) as new_followers, (?) as recipes", recipeCount).
		Joins("JOIN users ON users.id = follows.author_id AND users.deleted_at IS NULL").
		Where("follows.created_at >= ? AND follows.created_at < ?", startAt, endAt).
		Group("users.id, users.username").
		Order("new_followers DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
