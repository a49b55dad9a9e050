package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrDuplicate 唯一约束冲突
var ErrDuplicate = errors.New("duplicate record")

// applyPagination pageSize <= 0 表示不分页
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	return query.Limit(pageSize).Offset((max(page, 1) - 1) * pageSize)
}

// translateWriteError 唯一约束冲突转为 ErrDuplicate，依赖 gorm.Config.TranslateError
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// findOne 取第一条匹配记录，不存在时返回 (nil, nil)
func findOne[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var item T
	err := query.First(&item, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// findByIDs 按主键批量读取，按 id 升序；空 ids 不查库
func findByIDs[T any](db *gorm.DB, ids []uint) ([]T, error) {
	items := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	if err := db.Where("id IN ?", ids).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// listPage 先统计总数，再按 scopes 排序或预加载后取当前页
func listPage[T any](query *gorm.DB, page, pageSize int, scopes ...func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]T, 0)
	if err := applyPagination(query, page, pageSize).Scopes(scopes...).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func orderBy(columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, column := range columns {
			db = db.Order(column)
		}
		return db
	}
}

func preload(associations ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, association := range associations {
			db = db.Preload(association)
		}
		return db
	}
}

// createdBetween created_at 闭区间过滤，nil 端不限制
func createdBetween(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	return query
}
