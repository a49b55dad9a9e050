package public

import (
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// recipesLimit 解析 recipes_limit，缺省或非法时不限制
func recipesLimit(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("recipes_limit"))
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// ListSubscriptions 当前用户关注的作者
func (h *Handler) ListSubscriptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c, h.paginationDefaults())
	cards, total, err := h.FollowService.Subscriptions(userID, page, pageSize, recipesLimit(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.subscription_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, cards, response.BuildPagination(page, pageSize, total))
}

// Subscribe 关注作者
func (h *Handler) Subscribe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	authorID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	card, err := h.FollowService.Subscribe(userID, authorID, recipesLimit(c))
	if err != nil {
		respondWithMappedError(c, err, followErrorRules, "error.subscribe_failed")
		return
	}
	response.Created(c, card)
}

// Unsubscribe 取消关注
func (h *Handler) Unsubscribe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	authorID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	if err := h.FollowService.Unsubscribe(userID, authorID); err != nil {
		respondWithMappedError(c, err, followErrorRules, "error.unsubscribe_failed")
		return
	}
	response.NoContent(c)
}
