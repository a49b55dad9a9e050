package service

import (
	"strings"
	"time"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// 审计对象类型
const (
	AuditTargetAdmin      = "admin"
	AuditTargetRole       = "role"
	AuditTargetUser       = "user"
	AuditTargetRecipe     = "recipe"
	AuditTargetTag        = "tag"
	AuditTargetIngredient = "ingredient"
)

// AuthzAuditRecordInput 审计记录输入
type AuthzAuditRecordInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	TargetAdminID    *uint
	TargetType       string
	TargetID         uint
	Action           string
	Role             string
	Object           string
	Method           string
	RequestID        string
	Detail           models.JSON
}

// normalizedTarget 推断审计对象；指定了目标管理员时对象即该管理员，仅有角色时对象为角色
func (in AuthzAuditRecordInput) normalizedTarget() (string, uint) {
	targetType := strings.ToLower(strings.TrimSpace(in.TargetType))
	targetID := in.TargetID
	switch {
	case targetType != "":
	case in.TargetAdminID != nil:
		targetType = AuditTargetAdmin
		targetID = *in.TargetAdminID
	case strings.TrimSpace(in.Role) != "":
		targetType = AuditTargetRole
	}
	return targetType, targetID
}

// AuthzAuditService 后台审计服务
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
	now  func() time.Time
}

// NewAuthzAuditService 创建审计服务
func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo, now: time.Now}
}

// Record 写入一次后台操作，缺少操作人或动作时忽略
func (s *AuthzAuditService) Record(input AuthzAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	action := strings.ToLower(strings.TrimSpace(input.Action))
	if input.OperatorAdminID == 0 || action == "" {
		return nil
	}
	targetType, targetID := input.normalizedTarget()
	return s.repo.Create(&models.AuthzAuditLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		TargetAdminID:    input.TargetAdminID,
		TargetType:       targetType,
		TargetID:         targetID,
		Action:           action,
		Role:             strings.TrimSpace(input.Role),
		Object:           strings.TrimSpace(input.Object),
		Method:           strings.ToUpper(strings.TrimSpace(input.Method)),
		RequestID:        strings.TrimSpace(input.RequestID),
		Detail:           input.Detail,
		CreatedAt:        s.now(),
	})
}

// List 后台查询审计日志
func (s *AuthzAuditService) List(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuthzAuditLog{}, 0, nil
	}
	filter.TargetType = strings.ToLower(strings.TrimSpace(filter.TargetType))
	filter.Action = strings.ToLower(strings.TrimSpace(filter.Action))
	return s.repo.List(filter)
}
