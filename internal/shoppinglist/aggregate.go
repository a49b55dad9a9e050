package shoppinglist

import (
	"fmt"
	"strings"
)

// KeyMode 聚合时的分组键
type KeyMode string

const (
	// KeyByName 仅按名称合并，单位取首次出现的值
	KeyByName KeyMode = "name"
	// KeyByNameAndUnit 按名称与单位合并
	KeyByNameAndUnit KeyMode = "name_unit"
)

// ParseKeyMode 解析配置中的 group_by，空值按 name_unit 处理
func ParseKeyMode(raw string) (KeyMode, error) {
	switch KeyMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", KeyByNameAndUnit:
		return KeyByNameAndUnit, nil
	case KeyByName:
		return KeyByName, nil
	default:
		return "", fmt.Errorf("unknown shopping list group_by: %s", raw)
	}
}

// Row 购物车菜谱中的一条食材用量
type Row struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// Line 聚合后的一行
type Line struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type lineKey struct {
	name string
	unit string
}

// Aggregate 按 mode 合并用量，输出顺序为每个键首次出现的顺序
func Aggregate(rows []Row, mode KeyMode) []Line {
	lines := make([]Line, 0, len(rows))
	if len(rows) == 0 {
		return lines
	}
	index := make(map[lineKey]int, len(rows))
	for _, row := range rows {
		key := lineKey{name: row.Name}
		if mode != KeyByName {
			key.unit = row.MeasurementUnit
		}
		if pos, ok := index[key]; ok {
			lines[pos].Amount += row.Amount
			continue
		}
		index[key] = len(lines)
		lines = append(lines, Line{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	return lines
}

// FormatLine 单行文本，index 从 1 开始
func FormatLine(index int, line Line) string {
	return fmt.Sprintf("%d. %s - %d, %s.", index, line.Name, line.Amount, line.MeasurementUnit)
}
