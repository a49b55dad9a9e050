package admin

import (
	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/provider"
)

// Handler 后台管理接口处理器入口
// 说明：该处理器仅用于管理端 API。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// 后台列表默认每页 20 条
func (h *Handler) paginationDefaults() shared.PaginationDefaults {
	return shared.PaginationDefaults{
		DefaultLimit: 20,
		MaxLimit:     h.Config.Pagination.MaxLimit,
	}
}
