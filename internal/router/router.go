package router

import (
	"fmt"
	"strings"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	adminhandlers "github.com/foodgram-next/internal/http/handlers/admin"
	publichandlers "github.com/foodgram-next/internal/http/handlers/public"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	if err := RegisterValidators(); err != nil {
		logger.Errorw("router_register_validators_failed", "error", err)
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	loginRule := loginRateRule(cfg, "login")
	adminLoginRule := loginRateRule(cfg, "admin_login")
	userAuth := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo)
	optionalAuth := OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo)

	// 中间件
	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware())
	}
	r.Use(CORSMiddleware(cfg.CORS))

	// 菜谱图片
	r.Static(valueOr(cfg.Media.URLPrefix, "/media"), valueOr(cfg.Media.Root, "./media"))

	apiV1 := r.Group("/api/v1")
	{
		// 认证
		auth := apiV1.Group("/auth/token")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.POST("/logout", userAuth, publicHandler.UserLogout)
		}

		apiV1.GET("/config", publicHandler.GetConfig)

		captcha := apiV1.Group("/captcha")
		{
			captcha.GET("/config", publicHandler.GetCaptchaSetting)
			captcha.GET("/image", publicHandler.GetImageCaptcha)
		}

		// 用户与订阅
		users := apiV1.Group("/users")
		{
			users.POST("", publicHandler.UserRegister)
			users.GET("", optionalAuth, publicHandler.ListUsers)
			users.GET("/me", userAuth, publicHandler.GetCurrentUser)
			users.GET("/me/login_logs", userAuth, publicHandler.GetMyLoginLogs)
			users.POST("/set_password", userAuth, publicHandler.SetPassword)
			users.GET("/subscriptions", userAuth, publicHandler.ListSubscriptions)
			users.GET("/:id", optionalAuth, publicHandler.GetUser)
			users.POST("/:id/subscribe", userAuth, publicHandler.Subscribe)
			users.DELETE("/:id/subscribe", userAuth, publicHandler.Unsubscribe)
		}

		// 标签与食材只读
		apiV1.GET("/tags", publicHandler.ListTags)
		apiV1.GET("/tags/:id", publicHandler.GetTag)
		apiV1.GET("/ingredients", publicHandler.ListIngredients)
		apiV1.GET("/ingredients/:id", publicHandler.GetIngredient)

		// 菜谱
		recipes := apiV1.Group("/recipes")
		{
			recipes.GET("", optionalAuth, publicHandler.ListRecipes)
			recipes.POST("", userAuth, publicHandler.CreateRecipe)
			recipes.GET("/download_shopping_cart", userAuth, publicHandler.DownloadShoppingCart)
			recipes.GET("/:id", optionalAuth, publicHandler.GetRecipe)
			recipes.PATCH("/:id", userAuth, publicHandler.UpdateRecipe)
			recipes.DELETE("/:id", userAuth, publicHandler.DeleteRecipe)
			recipes.POST("/:id/favorite", userAuth, publicHandler.AddFavorite)
			recipes.DELETE("/:id/favorite", userAuth, publicHandler.RemoveFavorite)
			recipes.POST("/:id/shopping_cart", userAuth, publicHandler.AddToShoppingCart)
			recipes.DELETE("/:id/shopping_cart", userAuth, publicHandler.RemoveFromShoppingCart)
		}

		// 管理后台
		adminGroup := apiV1.Group("/admin")
		{
			adminGroup.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authorized := adminGroup.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			authorized.Use(AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/trends", adminHandler.GetDashboardTrends)
				authorized.GET("/dashboard/rankings", adminHandler.GetDashboardRankings)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/:id/status", adminHandler.UpdateAdminUserStatus)
				authorized.PUT("/users/:id/staff", adminHandler.UpdateAdminUserStaff)
				authorized.GET("/follows", adminHandler.GetAdminFollows)
				authorized.GET("/user_login_logs", adminHandler.GetUserLoginLogs)

				// 标签与食材
				authorized.GET("/tags", adminHandler.GetAdminTags)
				authorized.POST("/tags", adminHandler.CreateTag)
				authorized.PUT("/tags/:id", adminHandler.UpdateTag)
				authorized.DELETE("/tags/:id", adminHandler.DeleteTag)
				authorized.GET("/ingredients", adminHandler.GetAdminIngredients)
				authorized.POST("/ingredients", adminHandler.CreateIngredient)
				authorized.PUT("/ingredients/:id", adminHandler.UpdateIngredient)
				authorized.DELETE("/ingredients/:id", adminHandler.DeleteIngredient)

				// 菜谱审核
				authorized.GET("/recipes", adminHandler.GetAdminRecipes)
				authorized.GET("/recipes/:id", adminHandler.GetAdminRecipe)
				authorized.DELETE("/recipes/:id", adminHandler.DeleteAdminRecipe)
				authorized.GET("/favorites", adminHandler.GetAdminFavorites)
				authorized.GET("/shopping_carts", adminHandler.GetAdminShoppingCarts)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/roles/:role/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/roles/:role/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.PUT("/authz/admins/:id", adminHandler.UpdateAuthzAdmin)
				authorized.DELETE("/authz/admins/:id", adminHandler.DeleteAuthzAdmin)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/audit_logs", adminHandler.ListAuthzAuditLogs)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查与指标
	r.GET("/health", publicHandler.Health)
	if cfg.Metrics.Enabled {
		r.GET(valueOr(cfg.Metrics.Path, "/metrics"), gin.WrapH(promhttp.Handler()))
	}

	return r
}

func valueOr(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// loginRateRule 前台与后台登录共用一套阈值，按 redis 前缀与场景区分计数
func loginRateRule(cfg *config.Config, scene string) RateLimitRule {
	limit := cfg.Security.LoginRateLimit
	return RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:%s", valueOr(cfg.Redis.Prefix, "fg"), scene),
		WindowSeconds: limit.WindowSeconds,
		MaxRequests:   limit.MaxAttempts,
		BlockSeconds:  limit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
}
