package public

import (
	"errors"
	"strings"

	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListTags 全部标签，不分页
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.TagService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.tag_fetch_failed", err)
		return
	}
	response.Success(c, tags)
}

// GetTag 标签详情
func (h *Handler) GetTag(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.tag_not_found", nil)
		return
	}
	tag, err := h.TagService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.tag_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.tag_fetch_failed", err)
		return
	}
	response.Success(c, tag)
}

// ListIngredients 全部食材，name 按前缀不区分大小写过滤
func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.IngredientService.Search(strings.TrimSpace(c.Query("name")))
	if err != nil {
		respondError(c, response.CodeInternal, "error.ingredient_fetch_failed", err)
		return
	}
	response.Success(c, ingredients)
}

// GetIngredient 食材详情
func (h *Handler) GetIngredient(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.ingredient_not_found", nil)
		return
	}
	ingredient, err := h.IngredientService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.ingredient_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.ingredient_fetch_failed", err)
		return
	}
	response.Success(c, ingredient)
}
