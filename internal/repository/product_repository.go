package repository

import (
	"errors"

	"github.com/modish-shop/modish/internal/constants"
	"github.com/modish-shop/modish/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetColorByName(name string) (*models.ProductColor, error)
	GetSizeByName(name string) (*models.ProductSize, error)
	GetOption(productID, colorID, sizeID uint) (*models.ProductOption, error)
	GetOptionByID(id uint) (*models.ProductOption, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID 根据 ID 获取商品（带图片与基础关联）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	query := r.db.
		Preload("Category").
		Preload("Company").
		Preload("DeliveryMethod").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Options").
		Preload("Options.Color").
		Preload("Options.Size")
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetColorByName 根据名称获取颜色
func (r *GormProductRepository) GetColorByName(name string) (*models.ProductColor, error) {
	var color models.ProductColor
	if err := r.db.Where("name = ?", name).First(&color).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

// GetSizeByName 根据名称获取尺码
func (r *GormProductRepository) GetSizeByName(name string) (*models.ProductSize, error) {
	var size models.ProductSize
	if err := r.db.Where("name = ?", name).First(&size).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &size, nil
}

// GetOption 根据（商品, 颜色, 尺码）三元组获取规格
func (r *GormProductRepository) GetOption(productID, colorID, sizeID uint) (*models.ProductOption, error) {
	var option models.ProductOption
	if err := r.db.
		Where("product_id = ? AND color_id = ? AND size_id = ?", productID, colorID, sizeID).
		First(&option).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

// GetOptionByID 根据 ID 获取规格
func (r *GormProductRepository) GetOptionByID(id uint) (*models.ProductOption, error) {
	var option models.ProductOption
	if err := r.db.First(&option, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.OnlyActive {
		query = query.Where("status = ?", constants.ProductStatusActive)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	switch filter.Sort {
	case constants.ProductSortPriceAsc:
		query = query.Order("price ASC, id DESC")
	case constants.ProductSortPriceDesc:
		query = query.Order("price DESC, id DESC")
	default:
		query = query.Order("sort_order DESC, id DESC")
	}

	var products []models.Product
	if err := query.
		Preload("Company").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
