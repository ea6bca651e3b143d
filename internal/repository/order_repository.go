package repository

import (
	"errors"

	"github.com/modish-shop/modish/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetOpenCartByUser(userID uint) (*models.Order, error)
	CreateOpenCart(order *models.Order) error
	GetLineItem(orderID, productOptionID uint) (*models.OrderLineItem, error)
	CreateLineItem(item *models.OrderLineItem) error
	IncrementLineItemQuantity(orderID, productOptionID uint, delta int) (bool, error)
	UpdateLineItemQuantity(orderID, productOptionID uint, quantity int) (bool, error)
	UpdateTotalPrice(orderID uint, total models.Money) error
	ListLineItems(orderID uint) ([]models.OrderLineItem, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 在单个数据库事务内执行 fn
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetOpenCartByUser 获取用户当前未结算购物车
func (r *GormOrderRepository) GetOpenCartByUser(userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.
		Where("user_id = ? AND open_flag = ?", userID, true).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// CreateOpenCart 创建购物车订单。
// 依赖 (user_id, open_flag) 唯一索引，并发重复插入返回 gorm.ErrDuplicatedKey。
func (r *GormOrderRepository) CreateOpenCart(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetLineItem 获取订单内指定规格的订单行
func (r *GormOrderRepository) GetLineItem(orderID, productOptionID uint) (*models.OrderLineItem, error) {
	var item models.OrderLineItem
	if err := r.db.
		Where("order_id = ? AND product_option_id = ?", orderID, productOptionID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateLineItem 插入订单行。
// 依赖 (order_id, product_option_id) 唯一索引，重复插入返回 gorm.ErrDuplicatedKey。
func (r *GormOrderRepository) CreateLineItem(item *models.OrderLineItem) error {
	return r.db.Create(item).Error
}

// IncrementLineItemQuantity 原子累加订单行数量，返回是否命中已有行
func (r *GormOrderRepository) IncrementLineItemQuantity(orderID, productOptionID uint, delta int) (bool, error) {
	result := r.db.Model(&models.OrderLineItem{}).
		Where("order_id = ? AND product_option_id = ?", orderID, productOptionID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateLineItemQuantity 覆盖订单行数量，返回是否命中已有行
func (r *GormOrderRepository) UpdateLineItemQuantity(orderID, productOptionID uint, quantity int) (bool, error) {
	result := r.db.Model(&models.OrderLineItem{}).
		Where("order_id = ? AND product_option_id = ?", orderID, productOptionID).
		Update("quantity", quantity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateTotalPrice 写入订单结算总价
func (r *GormOrderRepository) UpdateTotalPrice(orderID uint, total models.Money) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_price", total).Error
}

// ListLineItems 获取订单行列表（带展示所需的全部关联）
func (r *GormOrderRepository) ListLineItems(orderID uint) ([]models.OrderLineItem, error) {
	var items []models.OrderLineItem
	if err := r.db.
		Preload("ProductOption").
		Preload("ProductOption.Color").
		Preload("ProductOption.Size").
		Preload("ProductOption.Product").
		Preload("ProductOption.Product.Company").
		Preload("ProductOption.Product.DeliveryMethod").
		Preload("ProductOption.Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
