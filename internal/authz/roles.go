package authz

import (
	"fmt"
	"sort"
	"strings"
)

// 角色通过一条 g(role, role:__anchor__) 登记，这样没有任何策略的空角色也能被列出

// RoleExists 角色是否已登记
func (s *Service) RoleExists(role string) (bool, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	if !s.available() {
		return false, ErrUnavailable
	}
	ok, err := s.enforcer.HasNamedGroupingPolicy(groupingPType, normalized, roleRegistry)
	if err != nil {
		return false, fmt.Errorf("authz: lookup role %s: %w", normalized, err)
	}
	return ok, nil
}

// EnsureRole 登记角色（已存在时不做改动），返回规范化后的名称
func (s *Service) EnsureRole(role string) (string, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return "", err
	}
	if !s.available() {
		return "", ErrUnavailable
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy(groupingPType, normalized, roleRegistry); err != nil {
		return "", fmt.Errorf("authz: register role %s: %w", normalized, err)
	}
	return normalized, nil
}

// ListRoles 已登记的全部角色，按名称排序
func (s *Service) ListRoles() ([]string, error) {
	if !s.available() {
		return nil, ErrUnavailable
	}
	rules, err := s.enforcer.GetFilteredNamedGroupingPolicy(groupingPType, 1, roleRegistry)
	if err != nil {
		return nil, fmt.Errorf("authz: list roles: %w", err)
	}
	roles := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) > 0 && strings.HasPrefix(rule[0], rolePrefix) {
			roles = append(roles, rule[0])
		}
	}
	sort.Strings(roles)
	return roles, nil
}

// DeleteRole 删除角色本身、它的策略、继承关系以及成员归属；预置角色返回 ErrRoleImmutable
func (s *Service) DeleteRole(role string) error {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	if isImmutableRole(normalized) {
		return ErrRoleImmutable
	}
	if !s.available() {
		return ErrUnavailable
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(0, normalized); err != nil {
		return fmt.Errorf("authz: remove policies of %s: %w", normalized, err)
	}
	// 字段 0 为角色自身的登记与继承，字段 1 为把它当作父角色的成员
	for _, field := range []int{0, 1} {
		if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy(groupingPType, field, normalized); err != nil {
			return fmt.Errorf("authz: unlink role %s: %w", normalized, err)
		}
	}
	return nil
}

// GrantRolePolicy 给角色追加一条策略，角色不存在时先登记
func (s *Service) GrantRolePolicy(role, object, action string) error {
	normalized, err := s.EnsureRole(role)
	if err != nil {
		return err
	}
	obj, act, err := normalizePolicy(object, action)
	if err != nil {
		return err
	}
	if _, err := s.enforcer.AddPolicy(normalized, obj, act); err != nil {
		return fmt.Errorf("authz: grant %s %s to %s: %w", act, obj, normalized, err)
	}
	return nil
}

// RevokeRolePolicy 撤销角色的一条策略
func (s *Service) RevokeRolePolicy(role, object, action string) error {
	normalized, err := s.existingRole(role)
	if err != nil {
		return err
	}
	obj, act, err := normalizePolicy(object, action)
	if err != nil {
		return err
	}
	if _, err := s.enforcer.RemovePolicy(normalized, obj, act); err != nil {
		return fmt.Errorf("authz: revoke %s %s from %s: %w", act, obj, normalized, err)
	}
	return nil
}

// GetRolePolicies 角色直接拥有的策略，不含继承
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	normalized, err := s.existingRole(role)
	if err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, normalized)
	if err != nil {
		return nil, fmt.Errorf("authz: policies of %s: %w", normalized, err)
	}
	return toPolicies(rules), nil
}

// SetAdminRoles 用 roles 整体替换管理员当前的角色，任一角色未登记则不做任何修改
func (s *Service) SetAdminRoles(adminID uint, roles []string) error {
	subject, err := s.adminSubject(adminID)
	if err != nil {
		return err
	}
	resolved := make([]string, 0, len(roles))
	for _, role := range roles {
		normalized, err := s.existingRole(role)
		if err != nil {
			return err
		}
		resolved = append(resolved, normalized)
	}

	if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy(groupingPType, 0, subject); err != nil {
		return fmt.Errorf("authz: clear roles of %s: %w", subject, err)
	}
	for _, role := range resolved {
		if _, err := s.enforcer.AddNamedGroupingPolicy(groupingPType, subject, role); err != nil {
			return fmt.Errorf("authz: assign %s to %s: %w", role, subject, err)
		}
	}
	return nil
}

// GetAdminRoles 管理员直接绑定的角色
func (s *Service) GetAdminRoles(adminID uint) ([]string, error) {
	subject, err := s.adminSubject(adminID)
	if err != nil {
		return nil, err
	}
	linked, err := s.enforcer.GetRolesForUser(subject)
	if err != nil {
		return nil, fmt.Errorf("authz: roles of %s: %w", subject, err)
	}
	roles := make([]string, 0, len(linked))
	for _, role := range linked {
		if role != roleRegistry && strings.HasPrefix(role, rolePrefix) {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)
	return roles, nil
}

func (s *Service) existingRole(role string) (string, error) {
	ok, err := s.RoleExists(role)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrRoleNotFound
	}
	return NormalizeRole(role)
}
