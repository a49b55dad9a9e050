package service

import (
	"errors"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// UserRecipeService 收藏与购物车服务
type UserRecipeService struct {
	recipeRepo   repository.RecipeRepository
	favoriteRepo repository.FavoriteRepository
	cartRepo     repository.ShoppingCartRepository
	upload       *UploadService
}

// NewUserRecipeService 创建收藏与购物车服务
func NewUserRecipeService(
	recipeRepo repository.RecipeRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.ShoppingCartRepository,
	upload *UploadService,
) *UserRecipeService {
	return &UserRecipeService{
		recipeRepo:   recipeRepo,
		favoriteRepo: favoriteRepo,
		cartRepo:     cartRepo,
		upload:       upload,
	}
}

// AddFavorite 加入收藏
func (s *UserRecipeService) AddFavorite(userID, recipeID uint) (*RecipeSummary, error) {
	recipe, err := s.requireRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	exists, err := s.favoriteRepo.Exists(userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFavoriteExists
	}
	if err := s.favoriteRepo.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrFavoriteExists
		}
		return nil, err
	}
	summary := newRecipeSummary(recipe, s.upload.MediaURL)
	return &summary, nil
}

// RemoveFavorite 取消收藏
func (s *UserRecipeService) RemoveFavorite(userID, recipeID uint) error {
	if _, err := s.requireRecipe(recipeID); err != nil {
		return err
	}
	affected, err := s.favoriteRepo.Delete(userID, recipeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// AddToCart 加入购物车
func (s *UserRecipeService) AddToCart(userID, recipeID uint) (*RecipeSummary, error) {
	recipe, err := s.requireRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	exists, err := s.cartRepo.Exists(userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCartExists
	}
	if err := s.cartRepo.Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCartExists
		}
		return nil, err
	}
	summary := newRecipeSummary(recipe, s.upload.MediaURL)
	return &summary, nil
}

// RemoveFromCart 移出购物车
func (s *UserRecipeService) RemoveFromCart(userID, recipeID uint) error {
	if _, err := s.requireRecipe(recipeID); err != nil {
		return err
	}
	affected, err := s.cartRepo.Delete(userID, recipeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}

// ListFavorites 后台收藏记录列表
func (s *UserRecipeService) ListFavorites(filter repository.UserRecipeListFilter) ([]models.Favorite, int64, error) {
	return s.favoriteRepo.List(filter)
}

// ListCarts 后台购物车记录列表
func (s *UserRecipeService) ListCarts(filter repository.UserRecipeListFilter) ([]models.ShoppingCart, int64, error) {
	return s.cartRepo.List(filter)
}

func (s *UserRecipeService) requireRecipe(recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}
