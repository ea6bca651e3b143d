package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
//
// OpenFlag 仅在购物车状态（open_cart）下为 true，关单后置为 NULL。
// (user_id, open_flag) 的联合唯一索引保证同一用户最多一个未结算购物车，
// NULL 不参与唯一性判定，所以历史订单不受影响。
type Order struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo    string         `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号
	UserID     uint           `gorm:"not null;uniqueIndex:idx_orders_user_open" json:"user_id"`   // 用户ID
	OpenFlag   *bool          `gorm:"uniqueIndex:idx_orders_user_open" json:"-"`                  // 购物车占位标记
	Status     string         `gorm:"index;not null" json:"status"`                               // 订单状态
	TotalPrice *Money         `gorm:"type:decimal(20,2)" json:"total_price"`                      // 结算总价（未结算为 NULL）
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	LineItems []OrderLineItem `gorm:"foreignKey:OrderID" json:"line_items,omitempty"` // 订单行
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderLineItem 订单行表（同一订单内同一规格只保留一行）
type OrderLineItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                                    // 主键
	OrderID         uint           `gorm:"not null;uniqueIndex:idx_line_order_option" json:"order_id"`              // 订单ID
	ProductOptionID uint           `gorm:"not null;uniqueIndex:idx_line_order_option" json:"product_option_id"`     // 商品规格ID
	ProductID       uint           `gorm:"index;not null" json:"product_id"`                                        // 商品ID
	Quantity        int            `gorm:"not null" json:"quantity"`                                                // 数量
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                                 // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                                 // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                          // 软删除时间

	// 关联
	ProductOption ProductOption `gorm:"foreignKey:ProductOptionID" json:"product_option,omitempty"`
}

// TableName 指定表名
func (OrderLineItem) TableName() string {
	return "order_line_items"
}
