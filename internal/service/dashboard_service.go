package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/repository"
)

const (
	dashboardCacheTTL      = 45 * time.Second
	dashboardCustomMaxDays = 90
	dashboardRankingLimit  = 5
)

// ErrDashboardRangeInvalid 仪表盘时间范围非法
var ErrDashboardRangeInvalid = errors.New("dashboard range invalid")

// DashboardService 仪表盘服务
// 说明：聚合后台首页的社区数据。
type DashboardService struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

// DashboardQueryInput 仪表盘查询输入
type DashboardQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	Timezone     string
	ForceRefresh bool
}

// DashboardWindow 响应里回显的统计窗口，To 为闭区间的最后一秒
type DashboardWindow struct {
	Range    string `json:"range"`
	From     string `json:"from"`
	To       string `json:"to"`
	Timezone string `json:"timezone"`
}

// DashboardOverviewResponse 仪表盘总览响应
type DashboardOverviewResponse struct {
	DashboardWindow
	KPI DashboardKPI `json:"kpi"`
}

// DashboardKPI 仪表盘核心指标
type DashboardKPI struct {
	UsersTotal         int64  `json:"users_total"`
	NewUsers           int64  `json:"new_users"`
	ActiveUsers        int64  `json:"active_users"`
	RecipesTotal       int64  `json:"recipes_total"`
	NewRecipes         int64  `json:"new_recipes"`
	TagsTotal          int64  `json:"tags_total"`
	IngredientsTotal   int64  `json:"ingredients_total"`
	FollowsTotal       int64  `json:"follows_total"`
	NewFollows         int64  `json:"new_follows"`
	FavoritesTotal     int64  `json:"favorites_total"`
	NewFavorites       int64  `json:"new_favorites"`
	ShoppingCartsTotal int64  `json:"shopping_carts_total"`
	LoginsFailed       int64  `json:"logins_failed"`
	RecipesPerAuthor   string `json:"recipes_per_author"`
}

// DashboardTrendResponse 仪表盘趋势响应
type DashboardTrendResponse struct {
	DashboardWindow
	Points []DashboardTrendPoint `json:"points"`
}

// DashboardTrendPoint 趋势点
type DashboardTrendPoint struct {
	Date      string `json:"date"`
	NewUsers  int64  `json:"new_users"`
	Recipes   int64  `json:"recipes"`
	Favorites int64  `json:"favorites"`
}

// DashboardRankingsResponse 仪表盘排行榜响应
type DashboardRankingsResponse struct {
	DashboardWindow
	TopRecipes []DashboardRecipeRanking `json:"top_recipes"`
	TopAuthors []DashboardAuthorRanking `json:"top_authors"`
}

// DashboardRecipeRanking 菜谱排行项
type DashboardRecipeRanking struct {
	RecipeID  uint   `json:"recipe_id"`
	Name      string `json:"name"`
	AuthorID  uint   `json:"author_id"`
	Favorites int64  `json:"favorites"`
	Carts     int64  `json:"carts"`
}

// DashboardAuthorRanking 作者排行项
type DashboardAuthorRanking struct {
	AuthorID     uint   `json:"author_id"`
	Username     string `json:"username"`
	NewFollowers int64  `json:"new_followers"`
	Recipes      int64  `json:"recipes"`
}

// 预设范围包含今天在内的天数
var dashboardPresetDays = map[string]int{"today": 1, "7d": 7, "30d": 30}

type dashboardWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time
	timezone string
}

func (w dashboardWindow) cacheKey(kind string) string {
	return fmt.Sprintf("dashboard:%s:%s:%d:%d:%s", kind, w.rangeKey, w.startAt.Unix(), w.endAt.Unix(), w.timezone)
}

func (w dashboardWindow) echo() DashboardWindow {
	return DashboardWindow{
		Range:    w.rangeKey,
		From:     w.startAt.Format(time.RFC3339),
		To:       w.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: w.timezone,
	}
}

// loadDashboard 解析窗口后先读 redis 缓存，未命中或强制刷新时调用 build 并回写
func loadDashboard[T any](ctx context.Context, s *DashboardService, input DashboardQueryInput, kind string, build func(dashboardWindow) (*T, error)) (*T, error) {
	if s == nil || s.repo == nil {
		return new(T), nil
	}
	window, err := resolveDashboardWindow(input, s.now())
	if err != nil {
		return nil, err
	}
	key := window.cacheKey(kind)
	if !input.ForceRefresh {
		cached := new(T)
		if hit, err := cache.GetJSON(ctx, key, cached); err == nil && hit {
			return cached, nil
		}
	}
	result, err := build(window)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, result, dashboardCacheTTL); err != nil {
		logger.Debugw("dashboard_cache_set_failed", "kind", kind, "error", err)
	}
	return result, nil
}

// GetOverview 全站累计与窗口内新增
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	return loadDashboard(ctx, s, input, "overview", func(window dashboardWindow) (*DashboardOverviewResponse, error) {
		row, err := s.repo.GetOverview(window.startAt, window.endAt)
		if err != nil {
			return nil, err
		}
		perAuthor := 0.0
		if row.UsersTotal > 0 {
			perAuthor = float64(row.RecipesTotal) / float64(row.UsersTotal)
		}
		return &DashboardOverviewResponse{
			DashboardWindow: window.echo(),
			KPI: DashboardKPI{
				UsersTotal:         row.UsersTotal,
				NewUsers:           row.NewUsers,
				ActiveUsers:        row.ActiveUsers,
				RecipesTotal:       row.RecipesTotal,
				NewRecipes:         row.NewRecipes,
				TagsTotal:          row.TagsTotal,
				IngredientsTotal:   row.IngredientsTotal,
				FollowsTotal:       row.FollowsTotal,
				NewFollows:         row.NewFollows,
				FavoritesTotal:     row.FavoritesTotal,
				NewFavorites:       row.NewFavorites,
				ShoppingCartsTotal: row.ShoppingCartsTotal,
				LoginsFailed:       row.LoginsFailed,
				RecipesPerAuthor:   fmt.Sprintf("%.2f", perAuthor),
			},
		}, nil
	})
}

// GetTrends 窗口内每天一个点，没有数据的日期补零
func (s *DashboardService) GetTrends(ctx context.Context, input DashboardQueryInput) (*DashboardTrendResponse, error) {
	return loadDashboard(ctx, s, input, "trends", func(window dashboardWindow) (*DashboardTrendResponse, error) {
		rows, err := s.repo.GetDailyCounts(window.startAt, window.endAt)
		if err != nil {
			return nil, err
		}
		byDay := make(map[string]repository.DashboardTrendRow, len(rows))
		for _, row := range rows {
			byDay[row.Day] = row
		}
		points := make([]DashboardTrendPoint, 0, len(rows))
		first := window.startAt
		for day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location()); day.Before(window.endAt); day = day.AddDate(0, 0, 1) {
			label := day.Format("2006-01-02")
			row := byDay[label]
			points = append(points, DashboardTrendPoint{
				Date:      label,
				NewUsers:  row.NewUsers,
				Recipes:   row.Recipes,
				Favorites: row.Favorites,
			})
		}
		return &DashboardTrendResponse{DashboardWindow: window.echo(), Points: points}, nil
	})
}

// GetRankings 窗口内收藏最多的菜谱与新增粉丝最多的作者
func (s *DashboardService) GetRankings(ctx context.Context, input DashboardQueryInput) (*DashboardRankingsResponse, error) {
	return loadDashboard(ctx, s, input, "rankings", func(window dashboardWindow) (*DashboardRankingsResponse, error) {
		recipeRows, err := s.repo.GetTopRecipes(window.startAt, window.endAt, dashboardRankingLimit)
		if err != nil {
			return nil, err
		}
		authorRows, err := s.repo.GetTopAuthors(window.startAt, window.endAt, dashboardRankingLimit)
		if err != nil {
			return nil, err
		}
		result := &DashboardRankingsResponse{
			DashboardWindow: window.echo(),
			TopRecipes:      make([]DashboardRecipeRanking, 0, len(recipeRows)),
			TopAuthors:      make([]DashboardAuthorRanking, 0, len(authorRows)),
		}
		for _, row := range recipeRows {
			name := strings.TrimSpace(row.Name)
			if name == "" {
				name = "-"
			}
			result.TopRecipes = append(result.TopRecipes, DashboardRecipeRanking{
				RecipeID:  row.RecipeID,
				Name:      name,
				AuthorID:  row.AuthorID,
				Favorites: row.Favorites,
				Carts:     row.Carts,
			})
		}
		for _, row := range authorRows {
			result.TopAuthors = append(result.TopAuthors, DashboardAuthorRanking{
				AuthorID:     row.AuthorID,
				Username:     strings.TrimSpace(row.Username),
				NewFollowers: row.NewFollowers,
				Recipes:      row.Recipes,
			})
		}
		return result, nil
	})
}

// resolveDashboardWindow 计算 [startAt, endAt) 窗口；未知时区回落到服务器本地时区
func resolveDashboardWindow(input DashboardQueryInput, now time.Time) (dashboardWindow, error) {
	window := dashboardWindow{rangeKey: strings.ToLower(strings.TrimSpace(input.Range))}
	if window.rangeKey == "" {
		window.rangeKey = "7d"
	}
	location := time.Local
	if name := strings.TrimSpace(input.Timezone); name != "" {
		if loaded, err := time.LoadLocation(name); err == nil {
			location = loaded
		}
	}
	window.timezone = location.String()

	if days, ok := dashboardPresetDays[window.rangeKey]; ok {
		local := now.In(location)
		tomorrow := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, location)
		window.endAt = tomorrow
		window.startAt = tomorrow.AddDate(0, 0, -days)
		return window, nil
	}
	if window.rangeKey != "custom" || input.From == nil || input.To == nil {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	window.startAt = input.From.In(location)
	last := input.To.In(location)
	if last.Before(window.startAt) || last.Sub(window.startAt) > dashboardCustomMaxDays*24*time.Hour {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	window.endAt = last.Add(time.Second)
	return window, nil
}
