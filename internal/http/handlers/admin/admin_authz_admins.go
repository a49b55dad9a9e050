package admin

import (
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

type authzAdminPayload struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsSuper  *bool   `json:"is_super"`
}

func (p authzAdminPayload) toInput() service.AdminAccountInput {
	return service.AdminAccountInput{Username: p.Username, Password: p.Password, IsSuper: p.IsSuper}
}

// ListAuthzAdmins 管理员列表
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, admins)
}

// CreateAuthzAdmin 创建管理员
func (h *Handler) CreateAuthzAdmin(c *gin.Context) {
	var req authzAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Username == nil || req.Password == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	admin, err := h.AuthService.CreateAdmin(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, "error.admin_create_failed")
		return
	}

	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		TargetAdminID: &admin.ID,
		Action:        "admin_create",
		Detail:        withDetail(adminAuditDetail(admin), "is_super", admin.IsSuper),
	})
	response.Created(c, admin)
}

// UpdateAuthzAdmin 更新管理员
func (h *Handler) UpdateAuthzAdmin(c *gin.Context) {
	adminID, ok := parseIDParam(c, "error.admin_id_invalid")
	if !ok {
		return
	}
	var req authzAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, updated, err := h.AuthService.UpdateAdmin(adminID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, "error.admin_update_failed")
		return
	}

	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		TargetAdminID: &admin.ID,
		Action:        "admin_update",
		Detail: withDetail(adminAuditDetail(admin),
			"updated_fields", updated,
			"is_super", admin.IsSuper,
		),
	})
	response.Success(c, admin)
}

// DeleteAuthzAdmin 删除管理员并解除其角色
func (h *Handler) DeleteAuthzAdmin(c *gin.Context) {
	adminID, ok := parseIDParam(c, "error.admin_id_invalid")
	if !ok {
		return
	}

	admin, err := h.AuthService.DeleteAdmin(currentAdminID(c), adminID)
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, "error.admin_delete_failed")
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, []string{}); err != nil {
		requestLog(c).Warnw("admin_authz_roles_cleanup_failed", "target_admin_id", adminID, "error", err)
	}

	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		TargetAdminID: &adminID,
		Action:        "admin_delete",
		Detail:        adminAuditDetail(admin),
	})
	response.NoContent(c)
}
