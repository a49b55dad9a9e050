package public

import (
	"strings"

	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RecipeIngredientRequest 菜谱食材用量
type RecipeIngredientRequest struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount"`
}

// RecipeWriteRequest 创建/更新菜谱请求；校验细节在 service 层完成以返回具体消息
type RecipeWriteRequest struct {
	Tags        []uint                    `json:"tags"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"dive"`
	Name        string                    `json:"name"`
	Text        string                    `json:"text"`
	Image       string                    `json:"image"`
	CookingTime int                       `json:"cooking_time"`
}

func (r RecipeWriteRequest) toInput() service.RecipeInput {
	ingredients := make([]service.RecipeIngredientInput, 0, len(r.Ingredients))
	for _, item := range r.Ingredients {
		ingredients = append(ingredients, service.RecipeIngredientInput{ID: item.ID, Amount: item.Amount})
	}
	return service.RecipeInput{
		Tags:        r.Tags,
		Ingredients: ingredients,
		Name:        r.Name,
		Text:        r.Text,
		Image:       strings.TrimSpace(r.Image),
		CookingTime: r.CookingTime,
	}
}

func recipeActor(c *gin.Context, userID uint) service.RecipeActor {
	return service.RecipeActor{UserID: userID, IsStaff: isStaff(c)}
}

// ListRecipes 菜谱列表，支持 tags/author/is_favorited/is_in_shopping_cart 过滤
func (h *Handler) ListRecipes(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c, h.paginationDefaults())
	tagSlugs := make([]string, 0)
	for _, slug := range c.QueryArray("tags") {
		if slug = strings.TrimSpace(slug); slug != "" {
			tagSlugs = append(tagSlugs, slug)
		}
	}
	query := service.RecipeQuery{
		Page:             page,
		PageSize:         pageSize,
		AuthorID:         shared.ParseUintQuery(c, "author"),
		TagSlugs:         tagSlugs,
		IsFavorited:      shared.QueryFlag(c, "is_favorited"),
		IsInShoppingCart: shared.QueryFlag(c, "is_in_shopping_cart"),
	}
	recipes, total, err := h.RecipeService.List(viewerID(c), query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.recipe_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, recipes, response.BuildPagination(page, pageSize, total))
}

// GetRecipe 菜谱详情
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.recipe_not_found", nil)
		return
	}
	recipe, err := h.RecipeService.Get(viewerID(c), id)
	if err != nil {
		respondWithMappedError(c, err, recipeReadErrorRules, "error.recipe_fetch_failed")
		return
	}
	response.Success(c, recipe)
}

// CreateRecipe 发布菜谱
func (h *Handler) CreateRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	recipe, err := h.RecipeService.Create(recipeActor(c, userID), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, recipeWriteErrorRules, "error.recipe_save_failed")
		return
	}
	metrics.RecipesPublished.Inc()
	response.Created(c, recipe)
}

// UpdateRecipe 更新菜谱，标签与食材整体替换
func (h *Handler) UpdateRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.recipe_not_found", nil)
		return
	}
	var req RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	recipe, err := h.RecipeService.Update(recipeActor(c, userID), id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, recipeWriteErrorRules, "error.recipe_save_failed")
		return
	}
	response.Success(c, recipe)
}

// DeleteRecipe 删除菜谱
func (h *Handler) DeleteRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.recipe_not_found", nil)
		return
	}
	if err := h.RecipeService.Delete(recipeActor(c, userID), id); err != nil {
		respondWithMappedError(c, err, recipeWriteErrorRules, "error.recipe_delete_failed")
		return
	}
	response.NoContent(c)
}
