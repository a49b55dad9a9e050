package models

import "time"

// Tag 菜谱标签
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`                      // 主键
	Name      string    `gorm:"size:200;uniqueIndex;not null" json:"name"` // 名称
	Color     string    `gorm:"size:7;uniqueIndex;not null" json:"color"`  // HEX 颜色，例如 #E26C2D
	Slug      string    `gorm:"size:200;uniqueIndex;not null" json:"slug"` // 唯一标识
	CreatedAt time.Time `json:"-"`                                         // 创建时间
	UpdatedAt time.Time `json:"-"`                                         // 更新时间
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// Ingredient 食材字典，名称+计量单位唯一
type Ingredient struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                                                       // 主键
	Name            string    `gorm:"size:200;not null;index;uniqueIndex:uniq_ingredient_name_unit,priority:1" json:"name"`       // 名称
	MeasurementUnit string    `gorm:"size:200;not null;uniqueIndex:uniq_ingredient_name_unit,priority:2" json:"measurement_unit"` // 计量单位
	CreatedAt       time.Time `json:"-"`                                                                                          // 创建时间
	UpdatedAt       time.Time `json:"-"`                                                                                          // 更新时间
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}
