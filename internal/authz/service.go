package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const casbinTableName = "casbin_rule"

// 请求对象为去掉 /api/v1 的后台路由，策略对象可以写 gin 路由模板（:id、*）
const rbacModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

// Policy 一条 sub/obj/act 策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

func (p Policy) less(other Policy) bool {
	if p.Subject != other.Subject {
		return p.Subject < other.Subject
	}
	if p.Object != other.Object {
		return p.Object < other.Object
	}
	return p.Action < other.Action
}

// Service 后台 RBAC，策略通过 gorm-adapter 保存在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 加载模型与已持久化的策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz: db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("authz: create adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModelText)
	if err != nil {
		return nil, fmt.Errorf("authz: parse model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("authz: new enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	// 每次增删策略都直接写回 casbin_rule
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz: load policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) available() bool {
	return s != nil && s.enforcer != nil
}

// EnforceAdmin 判断管理员能否以 method 访问 resource
func (s *Service) EnforceAdmin(adminID uint, resource, method string) (bool, error) {
	if !s.available() {
		return false, ErrUnavailable
	}
	return s.enforcer.Enforce(SubjectForAdmin(adminID), NormalizeObject(resource), NormalizeAction(method))
}

// GetAdminPolicies 管理员最终生效的策略，包含通过角色继承得到的部分
func (s *Service) GetAdminPolicies(adminID uint) ([]Policy, error) {
	subject, err := s.adminSubject(adminID)
	if err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetImplicitPermissionsForUser(subject)
	if err != nil {
		return nil, fmt.Errorf("authz: implicit permissions of %s: %w", subject, err)
	}
	return uniquePolicies(toPolicies(rules)), nil
}

func (s *Service) adminSubject(adminID uint) (string, error) {
	if adminID == 0 {
		return "", fmt.Errorf("authz: admin id is required")
	}
	if !s.available() {
		return "", ErrUnavailable
	}
	return SubjectForAdmin(adminID), nil
}

func toPolicies(rules [][]string) []Policy {
	out := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		out = append(out, Policy{
			Subject: strings.TrimSpace(rule[0]),
			Object:  NormalizeObject(rule[1]),
			Action:  NormalizeAction(rule[2]),
		})
	}
	return out
}

// uniquePolicies 去重并按 subject、object、action 排序
func uniquePolicies(policies []Policy) []Policy {
	seen := make(map[Policy]struct{}, len(policies))
	out := make([]Policy, 0, len(policies))
	for _, policy := range policies {
		if _, ok := seen[policy]; ok {
			continue
		}
		seen[policy] = struct{}{}
		out = append(out, policy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}
