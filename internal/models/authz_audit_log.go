package models

import "time"

// AuthzAuditLog 后台审计日志：权限变更、管理员账号变更与内容管理操作
type AuthzAuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string    `gorm:"size:150;not null;default:''" json:"operator_username"`
	TargetAdminID    *uint     `gorm:"index" json:"target_admin_id,omitempty"`
	TargetType       string    `gorm:"size:32;index:idx_authz_audit_target;not null;default:''" json:"target_type"`
	TargetID         uint      `gorm:"index:idx_authz_audit_target;not null;default:0" json:"target_id"`
	Action           string    `gorm:"size:100;index;not null" json:"action"`
	Role             string    `gorm:"size:120;index;not null;default:''" json:"role"`
	Object           string    `gorm:"size:255;not null;default:''" json:"object"`
	Method           string    `gorm:"size:20;not null;default:''" json:"method"`
	RequestID        string    `gorm:"size:64;not null;default:''" json:"request_id"`
	Detail           JSON      `gorm:"type:text" json:"detail"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
