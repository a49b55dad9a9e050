package admin

import (
	"context"
	"errors"
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 用户、菜谱、关注与收藏的 KPI
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	serveDashboard(c, h.DashboardService.GetOverview)
}

// GetDashboardTrends 按天的新增用户、菜谱与收藏
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	serveDashboard(c, h.DashboardService.GetTrends)
}

// GetDashboardRankings 窗口内收藏最多的菜谱与涨粉最多的作者
func (h *Handler) GetDashboardRankings(c *gin.Context) {
	serveDashboard(c, h.DashboardService.GetRankings)
}

// serveDashboard 解析统一的时间窗口参数后调用具体查询
func serveDashboard[T any](c *gin.Context, fetch func(context.Context, service.DashboardQueryInput) (T, error)) {
	input, err := parseDashboardQuery(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", err)
		return
	}
	data, err := fetch(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrDashboardRangeInvalid) {
			respondError(c, response.CodeBadRequest, "error.dashboard_range_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, data)
}

// parseDashboardQuery range=today|7d|30d|custom，custom 需要 from/to
func parseDashboardQuery(c *gin.Context) (service.DashboardQueryInput, error) {
	from, err := handlershared.ParseTimeQuery(c, "from")
	if err != nil {
		return service.DashboardQueryInput{}, err
	}
	to, err := handlershared.ParseTimeQuery(c, "to")
	if err != nil {
		return service.DashboardQueryInput{}, err
	}
	return service.DashboardQueryInput{
		Range:        strings.ToLower(strings.TrimSpace(c.DefaultQuery("range", "7d"))),
		From:         from,
		To:           to,
		Timezone:     strings.TrimSpace(c.Query("tz")),
		ForceRefresh: handlershared.QueryFlag(c, "force_refresh"),
	}, nil
}
