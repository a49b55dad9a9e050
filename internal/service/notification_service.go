package service

import (
	"fmt"
	"strings"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/repository"
)

// NotificationService 新菜谱关注者通知
type NotificationService struct {
	cfg          *config.Config
	recipeRepo   repository.RecipeRepository
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	emailService *EmailService
	queueClient  *queue.Client
	batchSize    int
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	cfg *config.Config,
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	emailService *EmailService,
	queueClient *queue.Client,
) *NotificationService {
	return &NotificationService{
		cfg:          cfg,
		recipeRepo:   recipeRepo,
		userRepo:     userRepo,
		followRepo:   followRepo,
		emailService: emailService,
		queueClient:  queueClient,
		batchSize:    constants.FollowerNotifyBatchSize,
	}
}

// DispatchRecipePublished 按关注记录游标分批，为每个关注者投递一封邮件任务
// 返回投递的任务数量
func (s *NotificationService) DispatchRecipePublished(payload queue.RecipePublishedPayload) (int, error) {
	exists, err := s.recipeRepo.Exists(payload.RecipeID)
	if err != nil {
		return 0, err
	}
	if !exists {
		logger.Infow("recipe_notify_skip_missing", "recipe_id", payload.RecipeID)
		return 0, nil
	}
	if !s.emailService.Enabled() {
		logger.Infow("recipe_notify_skip_email_disabled", "recipe_id", payload.RecipeID)
		return 0, nil
	}

	dispatched := 0
	var afterID uint
	for {
		follows, err := s.followRepo.ListFollowersAfter(payload.AuthorID, afterID, s.batchSize)
		if err != nil {
			return dispatched, err
		}
		if len(follows) == 0 {
			break
		}
		for _, follow := range follows {
			if err := s.queueClient.EnqueueFollowerRecipeEmail(queue.FollowerRecipeEmailPayload{
				RecipeID:   payload.RecipeID,
				FollowerID: follow.UserID,
				Locale:     payload.Locale,
			}); err != nil {
				return dispatched, fmt.Errorf("enqueue follower email: %w", err)
			}
			dispatched++
		}
		afterID = follows[len(follows)-1].ID
		if len(follows) < s.batchSize {
			break
		}
	}
	logger.Infow("recipe_notify_dispatched",
		"recipe_id", payload.RecipeID,
		"author_id", payload.AuthorID,
		"followers", dispatched,
	)
	return dispatched, nil
}

// SendFollowerEmail 向单个关注者发送新菜谱邮件，关系已解除或账号不可用时跳过
func (s *NotificationService) SendFollowerEmail(payload queue.FollowerRecipeEmailPayload) error {
	recipe, err := s.recipeRepo.GetByID(payload.RecipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return nil
	}
	follower, err := s.userRepo.GetByID(payload.FollowerID)
	if err != nil {
		return err
	}
	if follower == nil || follower.Status != constants.UserStatusActive {
		return nil
	}
	following, err := s.followRepo.Exists(follower.ID, recipe.AuthorID)
	if err != nil {
		return err
	}
	if !following {
		return nil
	}
	return s.emailService.SendRecipePublished(follower.Email, RecipePublishedEmailInput{
		AuthorName: displayName(&recipe.Author),
		RecipeName: recipe.Name,
		RecipeURL:  s.recipeURL(recipe.ID),
	}, payload.Locale)
}

func (s *NotificationService) recipeURL(recipeID uint) string {
	if s.cfg == nil {
		return ""
	}
	base := strings.TrimRight(strings.TrimSpace(s.cfg.Server.PublicURL), "/")
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/recipes/%d", base, recipeID)
}

func displayName(user *models.User) string {
	full := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if full != "" {
		return full
	}
	return user.Username
}
