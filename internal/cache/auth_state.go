package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/foodgram-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState 用户鉴权快照，鉴权中间件据此判断 token 是否仍然有效
// TokenInvalidBefore 为 Unix 秒，0 表示未设置
type UserAuthState struct {
	UserID             uint   `json:"user_id"`
	Status             string `json:"status"`
	IsStaff            bool   `json:"is_staff"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// AdminAuthState 管理员鉴权快照
type AdminAuthState struct {
	AdminID            uint   `json:"admin_id"`
	Username           string `json:"username"`
	IsSuper            bool   `json:"is_super"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

const (
	authKindUser  = "user"
	authKindAdmin = "admin"
)

func authStateKey(kind string, id uint) string {
	return fmt.Sprintf("auth:%s:%d", kind, id)
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

// BuildUserAuthState nil 用户返回 nil
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:             user.ID,
		Status:             user.Status,
		IsStaff:            user.IsStaff,
		TokenVersion:       user.TokenVersion,
		TokenInvalidBefore: unixOrZero(user.TokenInvalidBefore),
		UpdatedAt:          time.Now().Unix(),
	}
}

// BuildAdminAuthState nil 管理员返回 nil
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	return &AdminAuthState{
		AdminID:            admin.ID,
		Username:           admin.Username,
		IsSuper:            admin.IsSuper,
		TokenVersion:       admin.TokenVersion,
		TokenInvalidBefore: unixOrZero(admin.TokenInvalidBefore),
		UpdatedAt:          time.Now().Unix(),
	}
}

// 三个泛型助手：id 为 0 时均不访问 redis
func loadState[T any](ctx context.Context, kind string, id uint) (*T, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	state := new(T)
	hit, err := GetJSON(ctx, authStateKey(kind, id), state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return state, true, nil
}

func storeState[T any](ctx context.Context, kind string, id uint, state *T) error {
	if state == nil || id == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(kind, id), state, authStateCacheTTL)
}

func dropState(ctx context.Context, kind string, id uint) error {
	if id == 0 {
		return nil
	}
	return Del(ctx, authStateKey(kind, id))
}

// GetUserAuthState 返回 (快照, 是否命中, 错误)
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	return loadState[UserAuthState](ctx, authKindUser, userID)
}

func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil {
		return nil
	}
	return storeState(ctx, authKindUser, state.UserID, state)
}

// GetAdminAuthState 返回 (快照, 是否命中, 错误)
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	return loadState[AdminAuthState](ctx, authKindAdmin, adminID)
}

func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil {
		return nil
	}
	return storeState(ctx, authKindAdmin, state.AdminID, state)
}

func DelAdminAuthState(ctx context.Context, adminID uint) error {
	return dropState(ctx, authKindAdmin, adminID)
}
