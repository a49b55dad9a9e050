package public

import (
	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

type recipeToggleFunc func(userID, recipeID uint) (*service.RecipeSummary, error)

type recipeUntoggleFunc func(userID, recipeID uint) error

func (h *Handler) addUserRecipe(c *gin.Context, add recipeToggleFunc, rules []shared.MappedError, fallbackKey string) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recipeID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.recipe_not_found", nil)
		return
	}
	summary, err := add(userID, recipeID)
	if err != nil {
		respondWithMappedError(c, err, rules, fallbackKey)
		return
	}
	response.Created(c, summary)
}

func (h *Handler) removeUserRecipe(c *gin.Context, remove recipeUntoggleFunc, rules []shared.MappedError, fallbackKey string) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recipeID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.recipe_not_found", nil)
		return
	}
	if err := remove(userID, recipeID); err != nil {
		respondWithMappedError(c, err, rules, fallbackKey)
		return
	}
	response.NoContent(c)
}

// AddFavorite 加入收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	h.addUserRecipe(c, h.UserRecipeService.AddFavorite, favoriteErrorRules, "error.favorite_save_failed")
}

// RemoveFavorite 取消收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeUserRecipe(c, h.UserRecipeService.RemoveFavorite, favoriteErrorRules, "error.favorite_delete_failed")
}

// AddToShoppingCart 加入购物车
func (h *Handler) AddToShoppingCart(c *gin.Context) {
	h.addUserRecipe(c, h.UserRecipeService.AddToCart, cartErrorRules, "error.cart_save_failed")
}

// RemoveFromShoppingCart 移出购物车
func (h *Handler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeUserRecipe(c, h.UserRecipeService.RemoveFromCart, cartErrorRules, "error.cart_delete_failed")
}
