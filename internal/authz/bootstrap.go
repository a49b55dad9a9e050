package authz

import "fmt"

// RoleSeed 预置角色：名称、父角色与直接策略
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

func allow(object, action string) Policy {
	return Policy{Object: object, Action: action}
}

// BuiltinRoleSeeds 只读审计、内容管理、用户管理三个预置角色
func BuiltinRoleSeeds() []RoleSeed {
	auditor := "readonly_auditor"
	return []RoleSeed{
		{
			Role:      auditor,
			Policies:  []Policy{allow("/admin/*", "GET")},
			Immutable: true,
		},
		{
			Role:     "content_admin",
			Inherits: []string{auditor},
			Policies: []Policy{
				allow("/admin/tags", "*"),
				allow("/admin/tags/:id", "*"),
				allow("/admin/ingredients", "*"),
				allow("/admin/ingredients/:id", "*"),
				allow("/admin/recipes", "GET"),
				allow("/admin/recipes/:id", "*"),
			},
			Immutable: true,
		},
		{
			Role:     "user_admin",
			Inherits: []string{auditor},
			Policies: []Policy{
				allow("/admin/users", "GET"),
				allow("/admin/users/:id", "GET"),
				allow("/admin/users/:id/status", "PUT"),
				allow("/admin/users/:id/staff", "PUT"),
				allow("/admin/follows", "GET"),
			},
			Immutable: true,
		},
	}
}

func isImmutableRole(normalized string) bool {
	for _, seed := range BuiltinRoleSeeds() {
		if role, err := NormalizeRole(seed.Role); err == nil && seed.Immutable && role == normalized {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 写入预置角色，已存在的条目会被跳过，因此每次启动都可以执行
func (s *Service) BootstrapBuiltinRoles() error {
	if !s.available() {
		return ErrUnavailable
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy(groupingPType, role, parentRole); err != nil {
				return fmt.Errorf("authz: %s inherits %s: %w", role, parentRole, err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("authz: seed %s: %w", role, err)
			}
		}
	}
	return nil
}
