package shared

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/foodgram-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// PaginationDefaults 分页默认值与上限
type PaginationDefaults struct {
	DefaultLimit int
	MaxLimit     int
}

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int, defaults PaginationDefaults) (int, int) {
	if defaults.DefaultLimit <= 0 {
		defaults.DefaultLimit = constants.DefaultPageSize
	}
	if defaults.MaxLimit <= 0 {
		defaults.MaxLimit = constants.MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaults.DefaultLimit
	}
	if pageSize > defaults.MaxLimit {
		pageSize = defaults.MaxLimit
	}
	return page, pageSize
}

// ParsePagination 读取 page 与 limit（兼容 page_size）查询参数
func ParsePagination(c *gin.Context, defaults PaginationDefaults) (int, int) {
	page := queryInt(c, "page")
	pageSize := queryInt(c, "limit")
	if pageSize == 0 {
		pageSize = queryInt(c, "page_size")
	}
	return NormalizePagination(page, pageSize, defaults)
}

// ParseUintQuery 解析可选的 uint 查询参数，非法值视为 0
func ParseUintQuery(c *gin.Context, key string) uint {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// ParseUintParam 解析路径参数中的 ID
func ParseUintParam(c *gin.Context, key string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Param(key)), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// QueryFlag 判断 1/true 形式的开关参数
func QueryFlag(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func queryInt(c *gin.Context, key string) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

// ParseTimeQuery 解析可选的时间查询参数，支持 RFC3339 与 2006-01-02
func ParseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseCreatedRange 解析 created_from / created_to，两者都给出时要求 from 不晚于 to
func ParseCreatedRange(c *gin.Context) (from, to *time.Time, err error) {
	if from, err = ParseTimeQuery(c, "created_from"); err != nil {
		return nil, nil, err
	}
	if to, err = ParseTimeQuery(c, "created_to"); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, errors.New("created_from is after created_to")
	}
	return from, to, nil
}
