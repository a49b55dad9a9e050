package service

import (
	"errors"
	"strings"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/repository"
)

// RecipeService 菜谱业务服务
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	followRepo     repository.FollowRepository
	favoriteRepo   repository.FavoriteRepository
	cartRepo       repository.ShoppingCartRepository
	upload         *UploadService
	queueClient    *queue.Client
}

// NewRecipeService 创建菜谱服务
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	followRepo repository.FollowRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.ShoppingCartRepository,
	upload *UploadService,
	queueClient *queue.Client,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		followRepo:     followRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		upload:         upload,
		queueClient:    queueClient,
	}
}

// RecipeIngredientInput 菜谱食材用量输入
type RecipeIngredientInput struct {
	ID     uint
	Amount int
}

// RecipeInput 创建/更新菜谱输入，更新时 Image 可为空表示沿用原图
type RecipeInput struct {
	Tags        []uint
	Ingredients []RecipeIngredientInput
	Name        string
	Text        string
	Image       string
	CookingTime int
}

// RecipeActor 发起写操作的用户
type RecipeActor struct {
	UserID  uint
	IsStaff bool
}

// RecipeQuery 前台菜谱列表查询
type RecipeQuery struct {
	Page             int
	PageSize         int
	AuthorID         uint
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// List 前台菜谱列表，匿名用户忽略收藏/购物车过滤
func (s *RecipeService) List(viewerID uint, query RecipeQuery) ([]RecipeView, int64, error) {
	filter := repository.RecipeListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		AuthorID: query.AuthorID,
		TagSlugs: query.TagSlugs,
	}
	if viewerID != 0 {
		if query.IsFavorited {
			filter.FavoritedBy = viewerID
		}
		if query.IsInShoppingCart {
			filter.InCartOf = viewerID
		}
	}
	recipes, total, err := s.recipeRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildViews(viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Get 获取菜谱详情
func (s *RecipeService) Get(viewerID, id uint) (*RecipeView, error) {
	recipe, err := s.requireRecipe(id)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(viewerID, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create 创建菜谱，提交成功后异步通知关注者
func (s *RecipeService) Create(actor RecipeActor, input RecipeInput) (*RecipeView, error) {
	tagIDs, amounts, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Image) == "" {
		return nil, newValidationError("error.recipe_image_required", ErrRecipeImageRequired)
	}
	imagePath, err := s.upload.SaveBase64Image(input.Image, constants.MediaRecipeSubdir)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    actor.UserID,
		Name:        strings.TrimSpace(input.Name),
		Text:        strings.TrimSpace(input.Text),
		Image:       imagePath,
		CookingTime: input.CookingTime,
		PubDate:     time.Now(),
	}
	if err := s.recipeRepo.Create(recipe, tagIDs, amounts); err != nil {
		s.removeImage(imagePath)
		return nil, mapRecipeWriteError(err)
	}

	if err := s.queueClient.EnqueueRecipePublished(queue.RecipePublishedPayload{
		RecipeID: recipe.ID,
		AuthorID: recipe.AuthorID,
		Locale:   i18n.DefaultLocale,
	}, constants.RecipePublishedNotifyDelay*time.Second); err != nil {
		logger.Warnw("recipe_publish_enqueue_failed", "recipe_id", recipe.ID, "error", err)
	}
	return s.Get(actor.UserID, recipe.ID)
}

// Update 更新菜谱，标签与食材整体替换
func (s *RecipeService) Update(actor RecipeActor, id uint, input RecipeInput) (*RecipeView, error) {
	recipe, err := s.requireRecipe(id)
	if err != nil {
		return nil, err
	}
	if !canModifyRecipe(actor, recipe) {
		return nil, ErrForbidden
	}
	tagIDs, amounts, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	newImage := ""
	if strings.TrimSpace(input.Image) != "" {
		newImage, err = s.upload.SaveBase64Image(input.Image, constants.MediaRecipeSubdir)
		if err != nil {
			return nil, err
		}
		recipe.Image = newImage
	}
	recipe.Name = strings.TrimSpace(input.Name)
	recipe.Text = strings.TrimSpace(input.Text)
	recipe.CookingTime = input.CookingTime
	recipe.Tags = nil
	recipe.Ingredients = nil

	if err := s.recipeRepo.Update(recipe, tagIDs, amounts); err != nil {
		if newImage != "" {
			s.removeImage(newImage)
		}
		return nil, mapRecipeWriteError(err)
	}
	if newImage != "" && oldImage != newImage {
		s.removeImage(oldImage)
	}
	return s.Get(actor.UserID, recipe.ID)
}

// Delete 删除菜谱（作者或 staff）
func (s *RecipeService) Delete(actor RecipeActor, id uint) error {
	recipe, err := s.requireRecipe(id)
	if err != nil {
		return err
	}
	if !canModifyRecipe(actor, recipe) {
		return ErrForbidden
	}
	return s.deleteRecipe(recipe)
}

// AdminList 后台菜谱列表，附带收藏数
func (s *RecipeService) AdminList(filter repository.RecipeListFilter) ([]AdminRecipeView, int64, error) {
	filter.FavoritedBy = 0
	filter.InCartOf = 0
	recipes, total, err := s.recipeRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildAdminViews(recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// AdminGet 后台菜谱详情
func (s *RecipeService) AdminGet(id uint) (*AdminRecipeView, error) {
	recipe, err := s.requireRecipe(id)
	if err != nil {
		return nil, err
	}
	views, err := s.buildAdminViews([]models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// AdminDelete 后台删除菜谱
func (s *RecipeService) AdminDelete(id uint) error {
	recipe, err := s.requireRecipe(id)
	if err != nil {
		return err
	}
	return s.deleteRecipe(recipe)
}

func (s *RecipeService) deleteRecipe(recipe *models.Recipe) error {
	if err := s.recipeRepo.Delete(recipe.ID); err != nil {
		return err
	}
	s.removeImage(recipe.Image)
	return nil
}

func (s *RecipeService) requireRecipe(id uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

func (s *RecipeService) removeImage(relPath string) {
	if relPath == "" || s.upload == nil {
		return
	}
	if err := s.upload.Remove(relPath); err != nil {
		logger.Warnw("recipe_image_remove_failed", "path", relPath, "error", err)
	}
}

// validateInput 校验标签、食材与基础字段，返回去重后的写入数据
func (s *RecipeService) validateInput(input RecipeInput) ([]uint, []models.IngredientAmount, error) {
	if len(input.Tags) == 0 {
		return nil, nil, newValidationError("error.recipe_tags_required", ErrRecipeTagsRequired)
	}
	seenTags := make(map[uint]struct{}, len(input.Tags))
	for _, id := range input.Tags {
		if _, ok := seenTags[id]; ok {
			return nil, nil, newValidationError("error.recipe_tag_duplicate", ErrRecipeTagDuplicate, id)
		}
		seenTags[id] = struct{}{}
	}
	tags, err := s.tagRepo.ListByIDs(input.Tags)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(input.Tags) {
		return nil, nil, newValidationError("error.recipe_tag_not_found", ErrRecipeTagNotFound, missingID(input.Tags, tagIDSet(tags)))
	}

	if len(input.Ingredients) == 0 {
		return nil, nil, newValidationError("error.recipe_ingredients_required", ErrRecipeIngredientsRequired)
	}
	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	seenIngredients := make(map[uint]struct{}, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if _, ok := seenIngredients[item.ID]; ok {
			return nil, nil, newValidationError("error.recipe_ingredient_duplicate", ErrRecipeIngredientDuplicate, item.ID)
		}
		seenIngredients[item.ID] = struct{}{}
		if item.Amount < constants.IngredientMinAmount {
			return nil, nil, newValidationError("error.recipe_amount_invalid", ErrRecipeAmountInvalid, constants.IngredientMinAmount)
		}
		ingredientIDs = append(ingredientIDs, item.ID)
	}
	ingredients, err := s.ingredientRepo.ListByIDs(ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(ingredientIDs) {
		found := make(map[uint]bool, len(ingredients))
		for _, ingredient := range ingredients {
			found[ingredient.ID] = true
		}
		return nil, nil, newValidationError("error.recipe_ingredient_not_found", ErrRecipeIngredientNotFound, missingID(ingredientIDs, found))
	}

	if input.CookingTime < constants.RecipeMinCookingTime {
		return nil, nil, newValidationError("error.recipe_cooking_time_invalid", ErrRecipeCookingTimeInvalid, constants.RecipeMinCookingTime)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || len([]rune(name)) > constants.RecipeNameMaxLength {
		return nil, nil, newValidationError("error.recipe_name_invalid", ErrRecipeNameInvalid, constants.RecipeNameMaxLength)
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, nil, newValidationError("error.recipe_text_required", ErrRecipeTextRequired)
	}

	amounts := make([]models.IngredientAmount, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		amounts = append(amounts, models.IngredientAmount{IngredientID: item.ID, Amount: item.Amount})
	}
	return input.Tags, amounts, nil
}

// buildViews 批量组装菜谱视图，一次性查询收藏/购物车/关注状态
func (s *RecipeService) buildViews(viewerID uint, recipes []models.Recipe) ([]RecipeView, error) {
	views := make([]RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}
	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
		authorIDs = append(authorIDs, recipe.AuthorID)
	}

	favorited := map[uint]bool{}
	inCart := map[uint]bool{}
	followed := map[uint]bool{}
	if viewerID != 0 {
		var err error
		if favorited, err = s.favoriteRepo.RecipeIDsAmong(viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.cartRepo.RecipeIDsAmong(viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if followed, err = s.followRepo.FollowedAmong(viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	for i := range recipes {
		recipe := &recipes[i]
		view := RecipeView{
			ID:               recipe.ID,
			Tags:             recipe.Tags,
			Author:           newUserView(&recipe.Author, followed[recipe.AuthorID]),
			Ingredients:      make([]RecipeIngredientView, 0, len(recipe.Ingredients)),
			IsFavorited:      favorited[recipe.ID],
			IsInShoppingCart: inCart[recipe.ID],
			Name:             recipe.Name,
			Image:            s.upload.MediaURL(recipe.Image),
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
			PubDate:          recipe.PubDate,
		}
		if view.Tags == nil {
			view.Tags = []models.Tag{}
		}
		for _, amount := range recipe.Ingredients {
			view.Ingredients = append(view.Ingredients, RecipeIngredientView{
				ID:              amount.IngredientID,
				Name:            amount.Ingredient.Name,
				MeasurementUnit: amount.Ingredient.MeasurementUnit,
				Amount:          amount.Amount,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *RecipeService) buildAdminViews(recipes []models.Recipe) ([]AdminRecipeView, error) {
	views, err := s.buildViews(0, recipes)
	if err != nil {
		return nil, err
	}
	recipeIDs := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
	}
	counts, err := s.recipeRepo.CountFavorites(recipeIDs)
	if err != nil {
		return nil, err
	}
	result := make([]AdminRecipeView, 0, len(views))
	for _, view := range views {
		result = append(result, AdminRecipeView{RecipeView: view, FavoritesCount: counts[view.ID]})
	}
	return result, nil
}

func canModifyRecipe(actor RecipeActor, recipe *models.Recipe) bool {
	return actor.IsStaff || (actor.UserID != 0 && actor.UserID == recipe.AuthorID)
}

func mapRecipeWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return newValidationError("error.recipe_ingredients_not_unique", ErrRecipeIngredientDuplicate)
	}
	return err
}

func tagIDSet(tags []models.Tag) map[uint]bool {
	set := make(map[uint]bool, len(tags))
	for _, tag := range tags {
		set[tag.ID] = true
	}
	return set
}

func missingID(ids []uint, found map[uint]bool) uint {
	for _, id := range ids {
		if !found[id] {
			return id
		}
	}
	return 0
}
