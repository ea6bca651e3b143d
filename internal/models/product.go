package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	CompanyID        uint           `gorm:"not null;index" json:"company_id"`                          // 品牌公司ID
	DeliveryMethodID uint           `gorm:"not null;index" json:"delivery_method_id"`                  // 配送方式ID
	Name             string         `gorm:"not null;index" json:"name"`                                // 商品名称
	Description      string         `gorm:"type:text" json:"description"`                              // 商品描述
	Price            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`       // 原价
	DiscountPercent  int            `gorm:"not null;default:0" json:"discount_percent"`                // 折扣百分比（0 表示无折扣）
	Status           string         `gorm:"not null;default:'active';index" json:"status"`             // 上架状态
	SortOrder        int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Category       Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Company        Company         `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	DeliveryMethod DeliveryMethod  `gorm:"foreignKey:DeliveryMethodID" json:"delivery_method,omitempty"`
	Images         []ProductImage  `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Options        []ProductOption `gorm:"foreignKey:ProductID" json:"options,omitempty"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// DiscountedPrice 按折扣百分比计算的到手价
func (p *Product) DiscountedPrice() Money {
	if p.DiscountPercent <= 0 {
		return p.Price
	}
	factor := decimal.NewFromInt(int64(100 - p.DiscountPercent))
	return NewMoneyFromDecimal(p.Price.Decimal.Mul(factor).Div(decimal.NewFromInt(100)))
}

// PrimaryImageURL 返回主图地址（无主图时退回首张）
func (p *Product) PrimaryImageURL() string {
	for _, image := range p.Images {
		if image.IsPrimary {
			return image.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// ProductImage 商品图片表
type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	ProductID uint           `gorm:"index;not null" json:"product_id"` // 商品ID
	URL       string         `gorm:"not null" json:"url"`              // 图片地址
	IsPrimary bool           `gorm:"default:false" json:"is_primary"`  // 是否主图
	SortOrder int            `gorm:"default:0" json:"sort_order"`      // 排序权重
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}

// ProductColor 颜色字典表
type ProductColor struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 颜色名称
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (ProductColor) TableName() string {
	return "product_colors"
}

// ProductSize 尺码字典表
type ProductSize struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 尺码名称
	SortOrder int            `gorm:"default:0" json:"sort_order"`      // 排序权重
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (ProductSize) TableName() string {
	return "product_sizes"
}

// ProductOption 商品可售规格表（商品 × 颜色 × 尺码 唯一）
type ProductOption struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                          // 主键
	ProductID uint           `gorm:"not null;uniqueIndex:idx_option_product_color_size" json:"product_id"` // 商品ID
	ColorID   uint           `gorm:"not null;uniqueIndex:idx_option_product_color_size" json:"color_id"`   // 颜色ID
	SizeID    uint           `gorm:"not null;uniqueIndex:idx_option_product_color_size" json:"size_id"`    // 尺码ID
	Stock     int            `gorm:"not null;default:0" json:"stock"`                               // 库存数量
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联
	Product Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Color   ProductColor `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	Size    ProductSize  `gorm:"foreignKey:SizeID" json:"size,omitempty"`
}

// TableName 指定表名
func (ProductOption) TableName() string {
	return "product_options"
}
