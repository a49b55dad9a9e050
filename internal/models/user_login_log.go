package models

import "time"

// UserLoginLog 用户登录日志
// 记录每次 /auth/token/login 的结果，失败时 UserID 可能为 0
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                    // 主键
	UserID     uint      `gorm:"index" json:"user_id"`                    // 用户ID
	Email      string    `gorm:"size:254;index;not null" json:"email"`    // 尝试登录的邮箱
	Status     string    `gorm:"size:16;index;not null" json:"status"`    // success / failed
	FailReason string    `gorm:"size:32;index" json:"fail_reason"`        // 失败原因
	ClientIP   string    `gorm:"size:64;index" json:"client_ip"`          // 客户端IP
	UserAgent  string    `gorm:"type:text" json:"user_agent"`             // 客户端UA
	RequestID  string    `gorm:"size:64;index" json:"request_id"`         // 请求追踪ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                 // 记录时间
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
