package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景常量
const (
	CaptchaSceneLogin      = "login"
	CaptchaSceneAdminLogin = "admin_login"
	CaptchaSceneRegister   = "register"
)

// 购物清单输出格式
const (
	ShoppingListFormatText       = "text"
	ShoppingListFormatPDF        = "pdf"
	ShoppingListFormatPDFCompact = "pdf_compact"
)

// 分页默认值
const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// 菜谱字段限制
const (
	RecipeNameMaxLength     = 200
	RecipeMinCookingTime    = 1
	IngredientMinAmount     = 1
	TagNameMaxLength        = 200
	IngredientNameMaxLength = 200
	UserEmailMaxLength      = 254
	UserNameMaxLength       = 150
)

// 队列与任务常量
const (
	QueueDefault               = "default"
	TaskRecipePublishedNotify  = "recipe:published_notify"
	TaskFollowerRecipeEmail    = "recipe:follower_email"
	FollowerNotifyBatchSize    = 200
	FollowerNotifyMaxRetry     = 5
	RecipePublishedNotifyDelay = 0
)

// 媒体目录
const (
	MediaRecipeSubdir = "recipes"
)

// 登录日志
const (
	LoginLogStatusSuccess                = "success"
	LoginLogStatusFailed                 = "failed"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
)
