package repository

import (
	"strings"
	"time"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// UserLoginLogRepository 登录审计数据访问接口
type UserLoginLogRepository interface {
	Create(log *models.UserLoginLog) error
	List(filter UserLoginLogListFilter) ([]models.UserLoginLog, int64, error)
	DeleteBefore(cutoff time.Time) (int64, error)
}

// GormUserLoginLogRepository GORM 实现
type GormUserLoginLogRepository struct {
	db *gorm.DB
}

// NewUserLoginLogRepository 创建登录审计仓库
func NewUserLoginLogRepository(db *gorm.DB) *GormUserLoginLogRepository {
	return &GormUserLoginLogRepository{db: db}
}

// Create 写入一次登录尝试
func (r *GormUserLoginLogRepository) Create(log *models.UserLoginLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

func (r *GormUserLoginLogRepository) filtered(filter UserLoginLogListFilter) *gorm.DB {
	query := r.db.Model(&models.UserLoginLog{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	// 邮箱按包含匹配，便于排查同一域名下的撞库
	if email := strings.TrimSpace(filter.Email); email != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"email"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(email), argCount)...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	// IP 按前缀匹配，支持 "10.0." 这类网段查询
	if ip := strings.TrimSpace(filter.ClientIP); ip != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"client_ip"})
		query = query.Where(condition, repeatLikeArgs(prefixPattern(ip), argCount)...)
	}
	return createdBetween(query, filter.CreatedFrom, filter.CreatedTo)
}

// List 分页查询，最新的在前
func (r *GormUserLoginLogRepository) List(filter UserLoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	return listPage[models.UserLoginLog](r.filtered(filter), filter.Page, filter.PageSize, orderBy("id DESC"))
}

// DeleteBefore 删除 cutoff 之前的记录，返回删除条数
func (r *GormUserLoginLogRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.UserLoginLog{})
	return result.RowsAffected, result.Error
}
