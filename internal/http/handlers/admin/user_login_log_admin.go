package admin

import (
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetUserLoginLogs 支持 user_id、email 包含、status、client_ip 前缀与时间范围筛选
func (h *Handler) GetUserLoginLogs(c *gin.Context) {
	filter, err := loginLogFilter(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	filter.Page, filter.PageSize = handlershared.ParsePagination(c, h.paginationDefaults())

	logs, total, err := h.UserLoginLogService.ListForAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_login_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, response.BuildPagination(filter.Page, filter.PageSize, total))
}

func loginLogFilter(c *gin.Context) (repository.UserLoginLogListFilter, error) {
	from, to, err := handlershared.ParseCreatedRange(c)
	if err != nil {
		return repository.UserLoginLogListFilter{}, err
	}
	return repository.UserLoginLogListFilter{
		UserID:      handlershared.ParseUintQuery(c, "user_id"),
		Email:       strings.TrimSpace(c.Query("email")),
		Status:      strings.ToLower(strings.TrimSpace(c.Query("status"))),
		ClientIP:    strings.TrimSpace(c.Query("client_ip")),
		CreatedFrom: from,
		CreatedTo:   to,
	}, nil
}
