package public

import (
	"github.com/foodgram-next/internal/constants"
	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMyLoginLogs 获取当前用户登录日志
func (h *Handler) GetMyLoginLogs(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c, h.paginationDefaults())

	logs, total, err := h.UserLoginLogService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_login_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, response.BuildPagination(page, pageSize, total))
}

// recordLogin 写入登录日志，失败只记录日志不影响登录结果
func (h *Handler) recordLogin(c *gin.Context, userID uint, email string, loginErr error) {
	status := constants.LoginLogStatusSuccess
	if loginErr != nil {
		status = constants.LoginLogStatusFailed
	}
	err := h.UserLoginLogService.Record(service.RecordUserLoginInput{
		UserID:     userID,
		Email:      email,
		Status:     status,
		FailReason: service.LoginFailReason(loginErr),
		ClientIP:   c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		RequestID:  handlershared.RequestID(c),
	})
	if err != nil {
		handlershared.RequestLog(c).Warnw("user_login_log_record_failed", "email", email, "error", err)
	}
}
