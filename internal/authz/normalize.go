package authz

import (
	"fmt"
	"strings"
)

const (
	apiPrefix     = "/api/v1"
	rolePrefix    = "role:"
	adminSubject  = "admin:%d"
	roleRegistry  = "role:__anchor__"
	groupingPType = "g"
)

// SubjectForAdmin casbin 中管理员的主体名，例如 admin:3
func SubjectForAdmin(adminID uint) string {
	return fmt.Sprintf(adminSubject, adminID)
}

// NormalizeRole 补全 role: 前缀并把空白替换为下划线
func NormalizeRole(role string) (string, error) {
	name := strings.Join(strings.Fields(strings.TrimPrefix(strings.TrimSpace(role), rolePrefix)), "_")
	if name == "" {
		return "", ErrRoleInvalid
	}
	normalized := rolePrefix + name
	if normalized == roleRegistry {
		return "", ErrRoleInvalid
	}
	return normalized, nil
}

// NormalizeObject 把请求路径或策略对象统一成不带 /api/v1 的绝对路径
func NormalizeObject(object string) string {
	path := strings.TrimSpace(object)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	switch {
	case path == apiPrefix:
		return "/"
	case strings.HasPrefix(path, apiPrefix+"/"):
		return path[len(apiPrefix):]
	}
	return path
}

// NormalizeAction HTTP 方法统一大写，"*" 保持不变
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}

func normalizePolicy(object, action string) (string, string, error) {
	act := NormalizeAction(action)
	if act == "" || strings.TrimSpace(object) == "" {
		return "", "", ErrPolicyInvalid
	}
	return NormalizeObject(object), act, nil
}
