package public

import (
	"strings"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取前端所需的全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	captcha := service.CaptchaPublicSetting{Scenes: []string{}}
	if h.CaptchaService != nil {
		captcha = h.CaptchaService.PublicSetting()
	}

	defaults := h.paginationDefaults()
	data := map[string]interface{}{
		"languages":      i18n.SupportedLocales(),
		"default_locale": i18n.DefaultLocale,
		"captcha":        captcha,
		"pagination": map[string]interface{}{
			"default_limit": defaults.DefaultLimit,
			"max_limit":     defaults.MaxLimit,
		},
		"upload": map[string]interface{}{
			"max_size":      h.Config.Upload.MaxSize,
			"allowed_types": h.Config.Upload.AllowedTypes,
		},
		"shopping_list": map[string]interface{}{
			"format":   strings.ToLower(strings.TrimSpace(h.Config.ShoppingList.Format)),
			"group_by": strings.ToLower(strings.TrimSpace(h.Config.ShoppingList.GroupBy)),
		},
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}
