package repository

import "time"

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string // 匹配 username / email
	Status   string
}

// FollowListFilter 查询关注关系列表的过滤条件
type FollowListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	AuthorID uint
}

// IngredientListFilter 查询食材列表的过滤条件
type IngredientListFilter struct {
	Page       int
	PageSize   int
	NamePrefix string // 前台按名称前缀搜索
	Keyword    string // 后台按名称包含搜索
}

// RecipeListFilter 查询菜谱列表的过滤条件
type RecipeListFilter struct {
	Page     int
	PageSize int
	AuthorID uint
	// TagSlugs 任一标签命中即可
	TagSlugs []string
	// FavoritedBy / InCartOf 为 0 时不过滤
	FavoritedBy uint
	InCartOf    uint
	Name        string
}

// UserRecipeListFilter 查询收藏/购物车记录列表的过滤条件
type UserRecipeListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	RecipeID uint
}

// AuthzAuditLogListFilter 查询权限审计日志的过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	TargetType      string
	TargetID        uint
	Action          string
	Role            string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}

// UserLoginLogListFilter 查询登录日志的过滤条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
