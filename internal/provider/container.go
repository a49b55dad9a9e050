package provider

import (
	"errors"
	"fmt"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"
	"github.com/foodgram-next/internal/shoppinglist"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	FollowRepo        repository.FollowRepository
	TagRepo           repository.TagRepository
	IngredientRepo    repository.IngredientRepository
	RecipeRepo        repository.RecipeRepository
	FavoriteRepo      repository.FavoriteRepository
	ShoppingCartRepo  repository.ShoppingCartRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository
	UserLoginLogRepo  repository.UserLoginLogRepository
	DashboardRepo     repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	UserService         *service.UserService
	FollowService       *service.FollowService
	TagService          *service.TagService
	IngredientService   *service.IngredientService
	RecipeService       *service.RecipeService
	UserRecipeService   *service.UserRecipeService
	ShoppingListService *service.ShoppingListService
	NotificationService *service.NotificationService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	AuthzAuditService   *service.AuthzAuditService
	UserLoginLogService *service.UserLoginLogService
	DashboardService    *service.DashboardService
}

// NewContainer 初始化容器，使用全局数据库连接
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		return nil, err
	}
	return NewContainerWithDB(cfg, models.DB, queueClient)
}

// NewContainerWithDB 基于指定连接构建容器，测试中传入内存数据库
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

// Close 释放队列客户端与 redis 连接，进程退出前调用
func (c *Container) Close() error {
	var errs []error
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("queue client: %w", err))
		}
	}
	if err := cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.FollowRepo = repository.NewFollowRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.IngredientRepo = repository.NewIngredientRepository(db)
	c.RecipeRepo = repository.NewRecipeRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
	c.ShoppingCartRepo = repository.NewShoppingCartRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	renderer, err := shoppinglist.NewRenderer(c.Config.ShoppingList)
	if err != nil {
		return fmt.Errorf("shopping list renderer: %w", err)
	}
	keyMode, err := shoppinglist.ParseKeyMode(c.Config.ShoppingList.GroupBy)
	if err != nil {
		return fmt.Errorf("shopping list group_by: %w", err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.FollowRepo)
	c.FollowService = service.NewFollowService(c.FollowRepo, c.UserRepo, c.RecipeRepo, c.UploadService)
	c.TagService = service.NewTagService(c.TagRepo)
	c.IngredientService = service.NewIngredientService(c.IngredientRepo)
	c.RecipeService = service.NewRecipeService(
		c.RecipeRepo, c.TagRepo, c.IngredientRepo, c.FollowRepo,
		c.FavoriteRepo, c.ShoppingCartRepo, c.UploadService, c.QueueClient,
	)
	c.UserRecipeService = service.NewUserRecipeService(c.RecipeRepo, c.FavoriteRepo, c.ShoppingCartRepo, c.UploadService)
	c.ShoppingListService = service.NewShoppingListService(c.ShoppingCartRepo, renderer, keyMode)
	c.NotificationService = service.NewNotificationService(
		c.Config, c.RecipeRepo, c.UserRepo, c.FollowRepo, c.EmailService, c.QueueClient,
	)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	return nil
}
