package public

import (
	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	shared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []shared.MappedError, fallbackKey string) {
	shared.RespondMapped(c, err, rules, fallbackKey)
}

func concatMappedErrors(groups ...[]shared.MappedError) []shared.MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]shared.MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var imageErrorRules = []shared.MappedError{
	{Target: service.ErrImageInvalid, Code: response.CodeBadRequest, Key: "error.image_invalid"},
	{Target: service.ErrImageTooLarge, Code: response.CodeBadRequest, Key: "error.image_too_large"},
	{Target: service.ErrImageTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.image_type_not_allowed"},
	{Target: service.ErrImageDimensionExceeded, Code: response.CodeBadRequest, Key: "error.image_dimension_exceeded"},
}

var registerErrorRules = []shared.MappedError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "error.email_exists"},
	{Target: service.ErrUsernameExists, Code: response.CodeBadRequest, Key: "error.username_exists"},
	{Target: service.ErrUsernameInvalid, Code: response.CodeBadRequest, Key: "error.username_invalid"},
	{Target: service.ErrProfileInvalid, Code: response.CodeBadRequest, Key: "error.profile_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
}

var loginErrorRules = []shared.MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeBadRequest, Key: "error.login_invalid"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
}

var passwordErrorRules = []shared.MappedError{
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var followErrorRules = []shared.MappedError{
	{Target: service.ErrFollowSelf, Code: response.CodeBadRequest, Key: "error.follow_self"},
	{Target: service.ErrFollowExists, Code: response.CodeBadRequest, Key: "error.follow_exists"},
	{Target: service.ErrFollowNotFound, Code: response.CodeBadRequest, Key: "error.follow_not_found"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var recipeReadErrorRules = []shared.MappedError{
	{Target: service.ErrRecipeNotFound, Code: response.CodeNotFound, Key: "error.recipe_not_found"},
}

var recipeWriteErrorRules = concatMappedErrors(
	recipeReadErrorRules,
	imageErrorRules,
	[]shared.MappedError{
		{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
		{Target: service.ErrRecipeImageRequired, Code: response.CodeBadRequest, Key: "error.recipe_image_required"},
		{Target: service.ErrRecipeTagsRequired, Code: response.CodeBadRequest, Key: "error.recipe_tags_required"},
		{Target: service.ErrRecipeTagDuplicate, Code: response.CodeBadRequest, Key: "error.recipe_tag_duplicate"},
		{Target: service.ErrRecipeTagNotFound, Code: response.CodeBadRequest, Key: "error.recipe_tag_not_found"},
		{Target: service.ErrRecipeIngredientsRequired, Code: response.CodeBadRequest, Key: "error.recipe_ingredients_required"},
		{Target: service.ErrRecipeIngredientDuplicate, Code: response.CodeBadRequest, Key: "error.recipe_ingredient_duplicate"},
		{Target: service.ErrRecipeIngredientNotFound, Code: response.CodeBadRequest, Key: "error.recipe_ingredient_not_found"},
		{Target: service.ErrRecipeAmountInvalid, Code: response.CodeBadRequest, Key: "error.recipe_amount_invalid"},
		{Target: service.ErrRecipeCookingTimeInvalid, Code: response.CodeBadRequest, Key: "error.recipe_cooking_time_invalid"},
		{Target: service.ErrRecipeNameInvalid, Code: response.CodeBadRequest, Key: "error.recipe_name_invalid"},
		{Target: service.ErrRecipeTextRequired, Code: response.CodeBadRequest, Key: "error.recipe_text_required"},
	},
)

var favoriteErrorRules = concatMappedErrors(recipeReadErrorRules, []shared.MappedError{
	{Target: service.ErrFavoriteExists, Code: response.CodeBadRequest, Key: "error.favorite_exists"},
	{Target: service.ErrFavoriteNotFound, Code: response.CodeNotFound, Key: "error.favorite_not_found"},
})

var cartErrorRules = concatMappedErrors(recipeReadErrorRules, []shared.MappedError{
	{Target: service.ErrCartExists, Code: response.CodeBadRequest, Key: "error.cart_exists"},
	{Target: service.ErrCartNotFound, Code: response.CodeNotFound, Key: "error.cart_not_found"},
})
