package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryMethod 配送方式表
type DeliveryMethod struct {
	ID        uint           `gorm:"primarykey" json:"id"`                             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`                 // 配送方式名称
	Fee       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"fee"` // 配送费用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (DeliveryMethod) TableName() string {
	return "delivery_methods"
}
