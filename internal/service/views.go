package service

import (
	"time"

	"github.com/foodgram-next/internal/models"
)

// UserView 前台用户展示结构
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeIngredientView 菜谱内的食材及用量
type RecipeIngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView 菜谱完整展示结构
type RecipeView struct {
	ID               uint                   `json:"id"`
	Tags             []models.Tag           `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	PubDate          time.Time              `json:"pub_date"`
}

// RecipeSummary 菜谱摘要，用于收藏/购物车响应与关注卡片
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// FollowCard 关注列表中的作者卡片
type FollowCard struct {
	UserView
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// AdminRecipeView 后台菜谱列表项
type AdminRecipeView struct {
	RecipeView
	FavoritesCount int64 `json:"favorites_count"`
}

func newUserView(user *models.User, subscribed bool) UserView {
	if user == nil {
		return UserView{}
	}
	return UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}
}

// mediaURLFunc 将图片相对路径转换为访问地址
type mediaURLFunc func(string) string

func newRecipeSummary(recipe *models.Recipe, mediaURL mediaURLFunc) RecipeSummary {
	return RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       mediaURL(recipe.Image),
		CookingTime: recipe.CookingTime,
	}
}
