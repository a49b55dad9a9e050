package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（登录名为邮箱）
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                  // 主键
	Email              string         `gorm:"size:254;uniqueIndex;not null" json:"email"`            // 邮箱（登录名）
	Username           string         `gorm:"size:150;uniqueIndex;not null" json:"username"`         // 用户名
	FirstName          string         `gorm:"size:150;not null" json:"first_name"`                   // 名
	LastName           string         `gorm:"size:150;not null" json:"last_name"`                    // 姓
	PasswordHash       string         `gorm:"not null" json:"-"`                                     // 密码哈希（不返回给前端）
	IsStaff            bool           `gorm:"not null;default:false" json:"is_staff"`                // 是否可在前台维护标签/食材
	Status             string         `gorm:"size:20;not null;default:'active';index" json:"status"` // 账号状态
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                           // Token 版本（登出/改密后递增）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                        // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                                         // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// Admin 管理员表
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                          // 主键
	Username           string         `gorm:"size:150;uniqueIndex;not null" json:"username"` // 管理员账号
	PasswordHash       string         `gorm:"not null" json:"-"`                             // 密码哈希
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                   // Token 版本
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                // 该时间点前签发的 Token 失效
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"`  // 超级管理员（跳过 RBAC）
	LastLoginAt        *time.Time     `json:"last_login_at"`                                 // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

// Follow 关注关系（user 关注 author）
type Follow struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                           // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_follow_user_author,priority:1" json:"user_id"`         // 关注者
	AuthorID  uint      `gorm:"not null;uniqueIndex:uniq_follow_user_author,priority:2;index" json:"author_id"` // 被关注的作者
	CreatedAt time.Time `json:"created_at"`                                                                     // 关注时间

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Follow) TableName() string {
	return "follows"
}
