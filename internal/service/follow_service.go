package service

import (
	"errors"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// FollowService 关注服务
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
	upload     *UploadService
}

// NewFollowService 创建关注服务
func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
	upload *UploadService,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
		upload:     upload,
	}
}

// Subscribe 关注作者并返回作者卡片
func (s *FollowService) Subscribe(userID, authorID uint, recipesLimit int) (*FollowCard, error) {
	author, err := s.requireAuthor(authorID)
	if err != nil {
		return nil, err
	}
	if userID == authorID {
		return nil, ErrFollowSelf
	}
	exists, err := s.followRepo.Exists(userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFollowExists
	}
	if err := s.followRepo.Create(&models.Follow{UserID: userID, AuthorID: authorID}); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrFollowExists
		}
		return nil, err
	}
	cards, err := s.buildCards([]models.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// Unsubscribe 取消关注
func (s *FollowService) Unsubscribe(userID, authorID uint) error {
	if _, err := s.requireAuthor(authorID); err != nil {
		return err
	}
	if userID == authorID {
		return ErrFollowSelf
	}
	affected, err := s.followRepo.Delete(userID, authorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// Subscriptions 分页获取当前用户关注的作者卡片，按关注先后排序
func (s *FollowService) Subscriptions(userID uint, page, pageSize, recipesLimit int) ([]FollowCard, int64, error) {
	authorIDs, total, err := s.followRepo.ListAuthorIDs(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if len(authorIDs) == 0 {
		return []FollowCard{}, total, nil
	}
	users, err := s.userRepo.ListByIDs(authorIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	ordered := make([]models.User, 0, len(authorIDs))
	for _, id := range authorIDs {
		if user, ok := byID[id]; ok {
			ordered = append(ordered, user)
		}
	}
	cards, err := s.buildCards(ordered, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// AdminList 后台关注关系列表
func (s *FollowService) AdminList(filter repository.FollowListFilter) ([]models.Follow, int64, error) {
	return s.followRepo.List(filter)
}

func (s *FollowService) requireAuthor(authorID uint) (*models.User, error) {
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrNotFound
	}
	return author, nil
}

// buildCards 组装作者卡片，卡片出现在关注列表中，is_subscribed 恒为 true
func (s *FollowService) buildCards(authors []models.User, recipesLimit int) ([]FollowCard, error) {
	authorIDs := make([]uint, 0, len(authors))
	for _, author := range authors {
		authorIDs = append(authorIDs, author.ID)
	}
	counts, err := s.recipeRepo.CountByAuthors(authorIDs)
	if err != nil {
		return nil, err
	}
	cards := make([]FollowCard, 0, len(authors))
	for i := range authors {
		recipes, err := s.recipeRepo.ListByAuthor(authors[i].ID, recipesLimit)
		if err != nil {
			return nil, err
		}
		summaries := make([]RecipeSummary, 0, len(recipes))
		for j := range recipes {
			summaries = append(summaries, newRecipeSummary(&recipes[j], s.upload.MediaURL))
		}
		cards = append(cards, FollowCard{
			UserView:     newUserView(&authors[i], true),
			Recipes:      summaries,
			RecipesCount: counts[authors[i].ID],
		})
	}
	return cards, nil
}
