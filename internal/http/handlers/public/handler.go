package public

import (
	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/provider"
)

// Handler 前台/公开接口处理器入口
// 说明：该处理器仅用于游客与用户侧 API。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func (h *Handler) paginationDefaults() shared.PaginationDefaults {
	return shared.PaginationDefaults{
		DefaultLimit: h.Config.Pagination.DefaultLimit,
		MaxLimit:     h.Config.Pagination.MaxLimit,
	}
}
