package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/modish-shop/modish/internal/constants"
	"github.com/modish-shop/modish/internal/logger"
	"github.com/modish-shop/modish/internal/models"
	"github.com/modish-shop/modish/internal/queue"
	"github.com/modish-shop/modish/internal/repository"

	"gorm.io/gorm"
)

// CartService 购物车服务
type CartService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewCartService 创建购物车服务
func NewCartService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, queueClient *queue.Client) *CartService {
	return &CartService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// CartLineItemView 购物车行展示结构（含商品与配送快照）
type CartLineItemView struct {
	LineItemID         uint         `json:"line_item_id"`
	ProductID          uint         `json:"product_id"`
	ProductOptionID    uint         `json:"product_option_id"`
	ProductName        string       `json:"product_name"`
	ColorName          string       `json:"color_name"`
	SizeName           string       `json:"size_name"`
	Quantity           int          `json:"quantity"`
	UnitPrice          models.Money `json:"unit_price"`
	DiscountedPrice    models.Money `json:"discounted_price"`
	PrimaryImageURL    string       `json:"primary_image_url"`
	CompanyName        string       `json:"company_name"`
	DeliveryMethodName string       `json:"delivery_method_name"`
	DeliveryFee        models.Money `json:"delivery_fee"`
}

// GetOrCreateOpenCart 获取用户购物车，不存在则创建。
// 并发下依赖 (user_id, open_flag) 唯一索引兜底：插入撞车时回读已有购物车。
func (s *CartService) GetOrCreateOpenCart(userID uint) (*models.Order, error) {
	cart, err := s.orderRepo.GetOpenCartByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	open := true
	now := time.Now()
	order := &models.Order{
		OrderNo:   generateOrderNo(),
		UserID:    userID,
		OpenFlag:  &open,
		Status:    constants.OrderStatusOpenCart,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orderRepo.CreateOpenCart(order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, err := s.orderRepo.GetOpenCartByUser(userID)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				return nil, ErrCartConflict
			}
			return existing, nil
		}
		return nil, err
	}
	return order, nil
}

// ListByUser 获取用户购物车内容。
// 尚无购物车按空列表处理，不视为错误。
func (s *CartService) ListByUser(userID uint) ([]CartLineItemView, error) {
	cart, err := s.orderRepo.GetOpenCartByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []CartLineItemView{}, nil
	}
	return s.listCartViews(cart.ID)
}

// AddOrMergeItem 向购物车加入商品规格。
// 同一购物车内同一规格只保留一行，重复加入做数量累加；返回是否新建行。
func (s *CartService) AddOrMergeItem(userID, productID uint, colorName, sizeName string, quantity int) (bool, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, ErrProductNotFound
	}

	color, err := s.productRepo.GetColorByName(strings.TrimSpace(colorName))
	if err != nil {
		return false, err
	}
	if color == nil {
		return false, ErrColorNotFound
	}

	size, err := s.productRepo.GetSizeByName(strings.TrimSpace(sizeName))
	if err != nil {
		return false, err
	}
	if size == nil {
		return false, ErrSizeNotFound
	}

	option, err := s.productRepo.GetOption(product.ID, color.ID, size.ID)
	if err != nil {
		return false, err
	}
	if option == nil {
		return false, ErrOptionNotFound
	}

	if quantity <= 0 {
		return false, ErrInvalidQuantity
	}

	cart, err := s.GetOrCreateOpenCart(userID)
	if err != nil {
		return false, err
	}

	// 先尝试原子累加，未命中再插入新行；插入撞唯一索引说明并发方已建行，回退累加。
	merged, err := s.orderRepo.IncrementLineItemQuantity(cart.ID, option.ID, quantity)
	if err != nil {
		return false, err
	}
	if merged {
		return false, nil
	}

	now := time.Now()
	item := &models.OrderLineItem{
		OrderID:         cart.ID,
		ProductOptionID: option.ID,
		ProductID:       product.ID,
		Quantity:        quantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orderRepo.CreateLineItem(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			merged, err := s.orderRepo.IncrementLineItemQuantity(cart.ID, option.ID, quantity)
			if err != nil {
				return false, err
			}
			if !merged {
				return false, ErrCartConflict
			}
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Checkout 结算购物车中的指定规格。
// 数量与总价以客户端提交值为准覆盖写入（与前端确认页一致），整个覆盖过程在单个事务内完成。
func (s *CartService) Checkout(userID, productOptionID uint, finalQuantity int, finalTotalPrice models.Money) ([]CartLineItemView, error) {
	if finalQuantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if finalTotalPrice.IsNegative() {
		return nil, ErrInvalidTotalPrice
	}

	cart, err := s.orderRepo.GetOpenCartByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrNoOpenCart
	}

	if err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.orderRepo.WithTx(tx)
		updated, err := txRepo.UpdateLineItemQuantity(cart.ID, productOptionID, finalQuantity)
		if err != nil {
			return err
		}
		if !updated {
			return ErrLineItemNotFound
		}
		return txRepo.UpdateTotalPrice(cart.ID, finalTotalPrice)
	}); err != nil {
		return nil, err
	}

	if s.queueClient != nil {
		if err := s.queueClient.EnqueueCheckoutReceipt(cart.ID); err != nil {
			logger.Warnw("checkout_receipt_enqueue_failed", "order_id", cart.ID, "error", err)
		}
	}

	return s.listCartViews(cart.ID)
}

func (s *CartService) listCartViews(orderID uint) ([]CartLineItemView, error) {
	items, err := s.orderRepo.ListLineItems(orderID)
	if err != nil {
		return nil, err
	}
	views := make([]CartLineItemView, 0, len(items))
	for i := range items {
		views = append(views, buildCartLineItemView(&items[i]))
	}
	return views, nil
}

func buildCartLineItemView(item *models.OrderLineItem) CartLineItemView {
	option := item.ProductOption
	product := option.Product
	return CartLineItemView{
		LineItemID:         item.ID,
		ProductID:          product.ID,
		ProductOptionID:    option.ID,
		ProductName:        product.Name,
		ColorName:          option.Color.Name,
		SizeName:           option.Size.Name,
		Quantity:           item.Quantity,
		UnitPrice:          product.Price,
		DiscountedPrice:    product.DiscountedPrice(),
		PrimaryImageURL:    product.PrimaryImageURL(),
		CompanyName:        product.Company.Name,
		DeliveryMethodName: product.DeliveryMethod.Name,
		DeliveryFee:        product.DeliveryMethod.Fee,
	}
}

// generateOrderNo 生成订单编号（时间戳 + 随机尾号）
func generateOrderNo() string {
	suffix := int64(0)
	if n, err := rand.Int(rand.Reader, big.NewInt(10000)); err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("MD%s%04d", time.Now().Format("20060102150405"), suffix)
}
