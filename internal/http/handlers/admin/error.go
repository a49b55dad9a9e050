package admin

import (
	"github.com/foodgram-next/internal/authz"
	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackKey string) {
	handlershared.RespondMapped(c, err, rules, fallbackKey)
}

var tagErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.tag_not_found"},
	{Target: service.ErrTagInvalid, Code: response.CodeBadRequest, Key: "error.tag_invalid"},
	{Target: service.ErrTagExists, Code: response.CodeBadRequest, Key: "error.tag_exists"},
}

var ingredientErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.ingredient_not_found"},
	{Target: service.ErrIngredientInvalid, Code: response.CodeBadRequest, Key: "error.ingredient_invalid"},
	{Target: service.ErrIngredientExists, Code: response.CodeBadRequest, Key: "error.ingredient_exists"},
	{Target: service.ErrIngredientInUse, Code: response.CodeBadRequest, Key: "error.ingredient_in_use"},
}

var userErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrProfileInvalid, Code: response.CodeBadRequest, Key: "error.user_status_invalid"},
}

var recipeErrorRules = []handlershared.MappedError{
	{Target: service.ErrRecipeNotFound, Code: response.CodeNotFound, Key: "error.recipe_not_found"},
}

var adminPasswordErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var authzErrorRules = []handlershared.MappedError{
	{Target: authz.ErrRoleInvalid, Code: response.CodeBadRequest, Key: "error.authz_role_invalid"},
	{Target: authz.ErrPolicyInvalid, Code: response.CodeBadRequest, Key: "error.authz_policy_invalid"},
	{Target: authz.ErrRoleNotFound, Code: response.CodeNotFound, Key: "error.authz_role_not_found"},
	{Target: authz.ErrRoleImmutable, Code: response.CodeBadRequest, Key: "error.authz_role_immutable"},
}

var adminAccountErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
	{Target: service.ErrAdminUsernameInvalid, Code: response.CodeBadRequest, Key: "error.admin_username_invalid"},
	{Target: service.ErrAdminUsernameExists, Code: response.CodeBadRequest, Key: "error.admin_username_exists"},
	{Target: service.ErrAdminProtected, Code: response.CodeBadRequest, Key: "error.admin_protected"},
	{Target: service.ErrAdminDeleteSelf, Code: response.CodeBadRequest, Key: "error.admin_delete_self_forbidden"},
	{Target: service.ErrAdminDeleteLast, Code: response.CodeBadRequest, Key: "error.admin_delete_last_forbidden"},
	{Target: service.ErrAdminUpdateEmpty, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
}
