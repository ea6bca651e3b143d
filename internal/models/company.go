package models

import (
	"time"

	"gorm.io/gorm"
)

// Company 品牌/供应商表
type Company struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 公司名称
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Company) TableName() string {
	return "companies"
}
