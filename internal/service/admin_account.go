package service

import (
	"context"
	"strings"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/models"
)

// ProtectedSuperAdminUsername 内置超级管理员，不可删除也不可降级
const ProtectedSuperAdminUsername = "admin"

// AdminAccountInput 创建/更新管理员输入，nil 字段表示不修改
type AdminAccountInput struct {
	Username *string
	Password *string
	IsSuper  *bool
}

// ListAdmins 管理员列表
func (s *AuthService) ListAdmins() ([]models.Admin, error) {
	return s.adminRepo.List()
}

// CreateAdmin 创建管理员
func (s *AuthService) CreateAdmin(input AdminAccountInput) (*models.Admin, error) {
	if input.Username == nil || input.Password == nil {
		return nil, ErrAdminUsernameInvalid
	}
	username, err := normalizeAdminUsername(*input.Username)
	if err != nil {
		return nil, err
	}
	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminUsernameExists
	}
	password := strings.TrimSpace(*input.Password)
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password, username); err != nil {
		return nil, err
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		IsSuper:      (input.IsSuper != nil && *input.IsSuper) || isProtectedAdmin(username),
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, nil
}

// UpdateAdmin 更新管理员，返回实际变更的字段
func (s *AuthService) UpdateAdmin(adminID uint, input AdminAccountInput) (*models.Admin, []string, error) {
	admin, err := s.GetAdmin(adminID)
	if err != nil {
		return nil, nil, err
	}

	updated := make([]string, 0, 3)
	if input.Username != nil {
		username, err := normalizeAdminUsername(*input.Username)
		if err != nil {
			return nil, nil, err
		}
		if username != admin.Username {
			if isProtectedAdmin(admin.Username) {
				return nil, nil, ErrAdminProtected
			}
			existing, err := s.adminRepo.GetByUsername(username)
			if err != nil {
				return nil, nil, err
			}
			if existing != nil && existing.ID != admin.ID {
				return nil, nil, ErrAdminUsernameExists
			}
			admin.Username = username
			updated = append(updated, "username")
		}
	}
	if input.IsSuper != nil {
		next := *input.IsSuper || isProtectedAdmin(admin.Username)
		if admin.IsSuper != next {
			admin.IsSuper = next
			updated = append(updated, "is_super")
		}
	}

	if input.Password != nil {
		password := strings.TrimSpace(*input.Password)
		if err := validatePassword(s.cfg.Security.PasswordPolicy, password, admin.Username); err != nil {
			return nil, nil, err
		}
		updated = append(updated, "password")
		// setPassword 同时持久化其余字段并吊销旧 Token
		if err := s.setPassword(admin, password); err != nil {
			return nil, nil, err
		}
		return admin, updated, nil
	}

	if len(updated) == 0 {
		return nil, nil, ErrAdminUpdateEmpty
	}
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, nil, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, updated, nil
}

// DeleteAdmin 删除管理员，角色绑定由调用方清理
func (s *AuthService) DeleteAdmin(operatorID, adminID uint) (*models.Admin, error) {
	admin, err := s.GetAdmin(adminID)
	if err != nil {
		return nil, err
	}
	if operatorID == adminID {
		return nil, ErrAdminDeleteSelf
	}
	if isProtectedAdmin(admin.Username) {
		return nil, ErrAdminProtected
	}
	count, err := s.adminRepo.Count()
	if err != nil {
		return nil, err
	}
	if count <= 1 {
		return nil, ErrAdminDeleteLast
	}
	if err := s.adminRepo.Delete(adminID); err != nil {
		return nil, err
	}
	_ = cache.DelAdminAuthState(context.Background(), adminID)
	return admin, nil
}

func normalizeAdminUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\r\n") {
		return "", ErrAdminUsernameInvalid
	}
	length := len([]rune(trimmed))
	if length < 3 || length > 64 {
		return "", ErrAdminUsernameInvalid
	}
	return trimmed, nil
}

func isProtectedAdmin(username string) bool {
	return strings.EqualFold(strings.TrimSpace(username), ProtectedSuperAdminUsername)
}
