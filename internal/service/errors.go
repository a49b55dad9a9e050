package service

import "errors"

// 通用错误
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUsernameInvalid    = errors.New("invalid username")
	ErrProfileInvalid     = errors.New("invalid profile")
)

// 关注
var (
	ErrFollowSelf     = errors.New("cannot follow yourself")
	ErrFollowExists   = errors.New("already following")
	ErrFollowNotFound = errors.New("not following")
)

// 菜谱
var (
	ErrRecipeNotFound            = errors.New("recipe not found")
	ErrRecipeTagsRequired        = errors.New("recipe tags required")
	ErrRecipeTagDuplicate        = errors.New("recipe tags duplicated")
	ErrRecipeTagNotFound         = errors.New("recipe tag not found")
	ErrRecipeIngredientsRequired = errors.New("recipe ingredients required")
	ErrRecipeIngredientDuplicate = errors.New("recipe ingredients duplicated")
	ErrRecipeIngredientNotFound  = errors.New("recipe ingredient not found")
	ErrRecipeAmountInvalid       = errors.New("ingredient amount must be positive")
	ErrRecipeCookingTimeInvalid  = errors.New("cooking time must be positive")
	ErrRecipeNameInvalid         = errors.New("invalid recipe name")
	ErrRecipeTextRequired        = errors.New("recipe text required")
	ErrRecipeImageRequired       = errors.New("recipe image required")
)

// 收藏与购物车
var (
	ErrFavoriteExists   = errors.New("recipe already in favorites")
	ErrFavoriteNotFound = errors.New("recipe not in favorites")
	ErrCartExists       = errors.New("recipe already in shopping cart")
	ErrCartNotFound     = errors.New("recipe not in shopping cart")
)

// 标签与食材
var (
	ErrTagInvalid        = errors.New("invalid tag")
	ErrTagExists         = errors.New("tag already exists")
	ErrIngredientInvalid = errors.New("invalid ingredient")
	ErrIngredientExists  = errors.New("ingredient already exists")
	ErrIngredientInUse   = errors.New("ingredient is used by recipes")
)

// 上传
var (
	ErrImageInvalid           = errors.New("invalid image")
	ErrImageTooLarge          = errors.New("image too large")
	ErrImageTypeNotAllowed    = errors.New("image type not allowed")
	ErrImageDimensionExceeded = errors.New("image dimension exceeded")
)

// 验证码
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 邮件与队列
var (
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrQueueUnavailable          = errors.New("queue unavailable")
)

// 管理员账号
var (
	ErrAdminUsernameInvalid = errors.New("invalid admin username")
	ErrAdminUsernameExists  = errors.New("admin username already exists")
	ErrAdminProtected       = errors.New("admin account is protected")
	ErrAdminDeleteSelf      = errors.New("cannot delete current admin")
	ErrAdminDeleteLast      = errors.New("cannot delete the last admin")
	ErrAdminUpdateEmpty     = errors.New("nothing to update")
)

// ValidationError 带 i18n key 的字段校验错误，Is 匹配其哨兵错误
type ValidationError struct {
	Key  string
	Err  error
	Args []interface{}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Key
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(key string, err error, args ...interface{}) *ValidationError {
	return &ValidationError{Key: key, Err: err, Args: args}
}
