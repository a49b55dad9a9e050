package admin

import (
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAuthzAuditLogs 后台审计日志，target_type + target_id 可查看某个用户或菜谱的处理记录
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	createdFrom, createdTo, err := handlershared.ParseCreatedRange(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	page, pageSize := handlershared.ParsePagination(c, h.paginationDefaults())
	items, total, err := h.AuthzAuditService.List(repository.AuthzAuditLogListFilter{
		Page:            page,
		PageSize:        pageSize,
		OperatorAdminID: handlershared.ParseUintQuery(c, "operator_admin_id"),
		TargetAdminID:   handlershared.ParseUintQuery(c, "target_admin_id"),
		TargetType:      c.Query("target_type"),
		TargetID:        handlershared.ParseUintQuery(c, "target_id"),
		Action:          c.Query("action"),
		Role:            strings.TrimSpace(c.Query("role")),
		CreatedFrom:     createdFrom,
		CreatedTo:       createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// recordAdminAudit 补全操作人与请求 ID 后落库；写入失败不影响本次请求
func (h *Handler) recordAdminAudit(c *gin.Context, input service.AuthzAuditRecordInput) {
	input.OperatorAdminID = currentAdminID(c)
	input.OperatorUsername = currentUsername(c)
	input.RequestID = currentRequestID(c)

	log := logger.SW("request_id", input.RequestID, "operator_admin_id", input.OperatorAdminID, "action", input.Action)
	if h.AuthzAuditService == nil || input.OperatorAdminID == 0 {
		log.Debugw("admin_audit_skipped")
		return
	}
	if err := h.AuthzAuditService.Record(input); err != nil {
		log.Warnw("admin_audit_record_failed", "error", err)
		return
	}
	log.Infow("admin_audit_recorded", "target_type", input.TargetType, "target_id", input.TargetID, "role", input.Role)
}

func adminAuditDetail(admin *models.Admin) models.JSON {
	return models.JSON{"target_admin_id": admin.ID, "target_username": admin.Username}
}

// withDetail 追加 key/value 对，奇数个参数时丢弃最后一个
func withDetail(detail models.JSON, kv ...interface{}) models.JSON {
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			detail[key] = kv[i+1]
		}
	}
	return detail
}
