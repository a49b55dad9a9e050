package authz

import "errors"

var (
	// ErrUnavailable enforcer 未初始化
	ErrUnavailable = errors.New("authz service unavailable")
	// ErrRoleInvalid 角色名为空或为保留名
	ErrRoleInvalid = errors.New("invalid role")
	// ErrRoleNotFound 角色不存在
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleImmutable 预置角色不可删除
	ErrRoleImmutable = errors.New("builtin role is immutable")
	// ErrPolicyInvalid 策略缺少资源或动作
	ErrPolicyInvalid = errors.New("invalid policy")
)
