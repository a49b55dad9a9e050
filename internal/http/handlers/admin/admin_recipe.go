package admin

import (
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminRecipes 菜谱列表，附带收藏数
func (h *Handler) GetAdminRecipes(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, h.paginationDefaults())
	filter := repository.RecipeListFilter{
		Page:     page,
		PageSize: pageSize,
		AuthorID: handlershared.ParseUintQuery(c, "author_id"),
		Name:     strings.TrimSpace(c.Query("name")),
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		filter.TagSlugs = []string{tag}
	}
	recipes, total, err := h.RecipeService.AdminList(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.recipe_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, recipes, response.BuildPagination(page, pageSize, total))
}

// GetAdminRecipe 菜谱详情
func (h *Handler) GetAdminRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "error.recipe_id_invalid")
	if !ok {
		return
	}
	recipe, err := h.RecipeService.AdminGet(id)
	if err != nil {
		respondWithMappedError(c, err, recipeErrorRules, "error.recipe_fetch_failed")
		return
	}
	response.Success(c, recipe)
}

// DeleteAdminRecipe 删除菜谱
func (h *Handler) DeleteAdminRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "error.recipe_id_invalid")
	if !ok {
		return
	}
	if err := h.RecipeService.AdminDelete(id); err != nil {
		respondWithMappedError(c, err, recipeErrorRules, "error.recipe_delete_failed")
		return
	}
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		TargetType: service.AuditTargetRecipe,
		TargetID:   id,
		Action:     "recipe_delete",
	})
	response.NoContent(c)
}

func userRecipeFilter(c *gin.Context, page, pageSize int) repository.UserRecipeListFilter {
	return repository.UserRecipeListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   handlershared.ParseUintQuery(c, "user_id"),
		RecipeID: handlershared.ParseUintQuery(c, "recipe_id"),
	}
}

// GetAdminFavorites 收藏记录列表
func (h *Handler) GetAdminFavorites(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, h.paginationDefaults())
	items, total, err := h.UserRecipeService.ListFavorites(userRecipeFilter(c, page, pageSize))
	if err != nil {
		respondError(c, response.CodeInternal, "error.favorite_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// GetAdminShoppingCarts 购物车记录列表
func (h *Handler) GetAdminShoppingCarts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, h.paginationDefaults())
	items, total, err := h.UserRecipeService.ListCarts(userRecipeFilter(c, page, pageSize))
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}
