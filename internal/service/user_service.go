package service

import (
	"context"
	"strings"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// UserService 用户查询与后台管理服务
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// List 前台用户列表，标记当前用户是否已关注
func (s *UserService) List(viewerID uint, page, pageSize int) ([]UserView, int64, error) {
	users, total, err := s.userRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   constants.UserStatusActive,
	})
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	followed, err := s.followRepo.FollowedAmong(viewerID, ids)
	if err != nil {
		return nil, 0, err
	}
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i], followed[users[i].ID]))
	}
	return views, total, nil
}

// Get 前台用户详情
func (s *UserService) Get(viewerID, id uint) (*UserView, error) {
	user, err := s.requireUser(id)
	if err != nil {
		return nil, err
	}
	followed, err := s.followRepo.FollowedAmong(viewerID, []uint{user.ID})
	if err != nil {
		return nil, err
	}
	view := newUserView(user, followed[user.ID])
	return &view, nil
}

// Me 当前用户信息，自己不能关注自己
func (s *UserService) Me(userID uint) (*UserView, error) {
	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}
	view := newUserView(user, false)
	return &view, nil
}

// AdminList 后台用户列表
func (s *UserService) AdminList(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// AdminGet 后台用户详情
func (s *UserService) AdminGet(id uint) (*models.User, error) {
	return s.requireUser(id)
}

// UpdateStatus 启用/禁用用户，禁用时吊销 Token
func (s *UserService) UpdateStatus(id uint, status string) (*models.User, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return nil, newValidationError("error.user_status_invalid", ErrProfileInvalid)
	}
	if _, err := s.requireUser(id); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.refreshAuthState(id)
}

// UpdateStaff 设置 staff 标记
func (s *UserService) UpdateStaff(id uint, isStaff bool) (*models.User, error) {
	if _, err := s.requireUser(id); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateStaff(id, isStaff); err != nil {
		return nil, err
	}
	return s.refreshAuthState(id)
}

// refreshAuthState 重新读取用户并同步缓存中的鉴权状态
func (s *UserService) refreshAuthState(id uint) (*models.User, error) {
	user, err := s.requireUser(id)
	if err != nil {
		return nil, err
	}
	if err := cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("user_auth_state_cache_failed", "user_id", id, "error", err)
	}
	return user, nil
}

func (s *UserService) requireUser(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
