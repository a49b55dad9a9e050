package admin

import (
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers 用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, h.paginationDefaults())
	users, total, err := h.UserService.AdminList(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// GetAdminUser 用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	user, err := h.UserService.AdminGet(id)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.user_fetch_failed")
		return
	}
	response.Success(c, user)
}

// UpdateUserStatusRequest 启用/禁用用户
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAdminUserStatus 启用或禁用用户，禁用时旧 Token 立即失效
func (h *Handler) UpdateAdminUserStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserService.UpdateStatus(id, strings.TrimSpace(req.Status))
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.save_failed")
		return
	}
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		TargetType: service.AuditTargetUser,
		TargetID:   user.ID,
		Action:     "user_status_update",
		Detail:     models.JSON{"email": user.Email, "status": user.Status},
	})
	response.Success(c, user)
}

// UpdateUserStaffRequest 切换 is_staff
type UpdateUserStaffRequest struct {
	IsStaff *bool `json:"is_staff" binding:"required"`
}

// UpdateAdminUserStaff 设置用户是否为站务人员
func (h *Handler) UpdateAdminUserStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	var req UpdateUserStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserService.UpdateStaff(id, *req.IsStaff)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.save_failed")
		return
	}
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		TargetType: service.AuditTargetUser,
		TargetID:   user.ID,
		Action:     "user_staff_update",
		Detail:     models.JSON{"email": user.Email, "is_staff": user.IsStaff},
	})
	response.Success(c, user)
}

// GetAdminFollows 关注关系列表
func (h *Handler) GetAdminFollows(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, h.paginationDefaults())
	follows, total, err := h.FollowService.AdminList(repository.FollowListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   handlershared.ParseUintQuery(c, "user_id"),
		AuthorID: handlershared.ParseUintQuery(c, "author_id"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.follow_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, follows, response.BuildPagination(page, pageSize, total))
}
