package models

import "time"

// Recipe 菜谱
type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`                // 主键
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`     // 作者
	Name        string    `gorm:"size:200;not null;index" json:"name"` // 名称
	Image       string    `gorm:"size:500;not null" json:"image"`      // 图片相对路径
	Text        string    `gorm:"type:text;not null" json:"text"`      // 描述
	CookingTime int       `gorm:"not null" json:"cooking_time"`        // 烹饪时间（分钟）
	PubDate     time.Time `gorm:"not null;index" json:"pub_date"`      // 发布时间
	UpdatedAt   time.Time `json:"-"`                                   // 更新时间

	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients []IngredientAmount `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipes"
}

// IngredientAmount 菜谱中某食材的用量，同一菜谱内食材唯一
type IngredientAmount struct {
	ID           uint `gorm:"primarykey" json:"id"`                                                                     // 主键
	RecipeID     uint `gorm:"not null;uniqueIndex:uniq_amount_recipe_ingredient,priority:1" json:"recipe_id"`           // 菜谱
	IngredientID uint `gorm:"not null;uniqueIndex:uniq_amount_recipe_ingredient,priority:2;index" json:"ingredient_id"` // 食材
	Amount       int  `gorm:"not null" json:"amount"`                                                                   // 用量

	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (IngredientAmount) TableName() string {
	return "ingredient_amounts"
}

// Favorite 收藏
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                             // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_favorite_user_recipe,priority:1" json:"user_id"`         // 用户
	RecipeID  uint      `gorm:"not null;uniqueIndex:uniq_favorite_user_recipe,priority:2;index" json:"recipe_id"` // 菜谱
	CreatedAt time.Time `json:"created_at"`                                                                       // 收藏时间

	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCart 购物车条目，每个用户对同一菜谱仅一条
type ShoppingCart struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                         // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_cart_user_recipe,priority:1" json:"user_id"`         // 用户
	RecipeID  uint      `gorm:"not null;uniqueIndex:uniq_cart_user_recipe,priority:2;index" json:"recipe_id"` // 菜谱
	CreatedAt time.Time `json:"created_at"`                                                                   // 加入时间

	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (ShoppingCart) TableName() string {
	return "shopping_carts"
}
