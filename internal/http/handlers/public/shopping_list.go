package public

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/metrics"

	"github.com/gin-gonic/gin"
)

// DownloadShoppingCart 汇总购物车食材并以附件形式下载
// 先渲染到内存，失败时仍可返回 JSON 错误
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	renderer := h.ShoppingListService.Renderer()

	var buf bytes.Buffer
	err := h.ShoppingListService.Render(&buf, userID, i18n.ResolveLocale(c))
	metrics.RecordShoppingListDownload(h.Config.ShoppingList.Format, err)
	if err != nil {
		respondError(c, response.CodeInternal, "error.shopping_list_render_failed", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", renderer.Filename()))
	c.Data(http.StatusOK, renderer.ContentType(), buf.Bytes())
}
