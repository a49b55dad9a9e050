package admin

import (
	"net/url"
	"strings"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// roleParam 路由中的 :role 可能被前端 URL 编码（role%3Aeditor）
func roleParam(c *gin.Context) (string, bool) {
	raw := c.Param("role")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	role := strings.TrimSpace(raw)
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return "", false
	}
	return role, true
}

// findAdmin 读取 :id 对应的管理员，不存在时直接写 404
func (h *Handler) findAdmin(c *gin.Context, failKey string) (*models.Admin, bool) {
	adminID, ok := parseIDParam(c, "error.admin_id_invalid")
	if !ok {
		return nil, false
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, failKey, err)
		return nil, false
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return nil, false
	}
	return admin, true
}

// ListAuthzRoles 已登记的角色
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 登记一个空角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules, "error.save_failed")
		return
	}
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{Action: "role_create", Role: role, Detail: models.JSON{"role": role}})
	response.Created(c, gin.H{"role": role})
}

// DeleteAuthzRole 删除角色，预置角色不可删除
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondWithMappedError(c, err, authzErrorRules, "error.delete_failed")
		return
	}
	normalized, _ := authz.NormalizeRole(role)
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{Action: "role_delete", Role: normalized, Detail: models.JSON{"role": normalized}})
	response.NoContent(c)
}

// GetAuthzRolePolicies 角色直接拥有的策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules, "error.authz_fetch_failed")
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 给角色追加策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	h.changeRolePolicy(c, "policy_grant", h.AuthzService.GrantRolePolicy)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	h.changeRolePolicy(c, "policy_revoke", h.AuthzService.RevokeRolePolicy)
}

func (h *Handler) changeRolePolicy(c *gin.Context, action string, apply func(role, object, method string) error) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := apply(role, req.Object, req.Action); err != nil {
		respondWithMappedError(c, err, authzErrorRules, "error.save_failed")
		return
	}

	normalized, _ := authz.NormalizeRole(role)
	policy := authz.Policy{Subject: normalized, Object: authz.NormalizeObject(req.Object), Action: authz.NormalizeAction(req.Action)}
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		Action: action,
		Role:   policy.Subject,
		Object: policy.Object,
		Method: policy.Action,
		Detail: models.JSON{"role": policy.Subject, "object": policy.Object, "method": policy.Action},
	})
	response.Success(c, policy)
}

// GetAuthzAdminRoles 管理员当前绑定的角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	admin, ok := h.findAdmin(c, "error.authz_fetch_failed")
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(admin.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 整体替换管理员角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	admin, ok := h.findAdmin(c, "error.save_failed")
	if !ok {
		return
	}
	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(admin.ID, req.Roles); err != nil {
		respondWithMappedError(c, err, authzErrorRules, "error.save_failed")
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(admin.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}

	detail := adminAuditDetail(admin)
	detail["roles"] = roles
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{TargetAdminID: &admin.ID, Action: "admin_roles_update", Detail: detail})
	response.Success(c, roles)
}
