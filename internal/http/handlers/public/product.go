package public

import (
	"errors"
	"strconv"

	handlershared "github.com/modish-shop/modish/internal/http/handlers/shared"
	"github.com/modish-shop/modish/internal/http/response"
	"github.com/modish-shop/modish/internal/models"
	"github.com/modish-shop/modish/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductSummary 商品列表项
type ProductSummary struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	Price           models.Money `json:"price"`
	DiscountedPrice models.Money `json:"discounted_price"`
	DiscountPercent int          `json:"discount_percent"`
	PrimaryImageURL string       `json:"primary_image_url"`
	CompanyName     string       `json:"company_name"`
}

// GetProducts 商品列表（公开）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.List(service.ProductListInput{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(categoryID),
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}

	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		product := &products[i]
		summaries = append(summaries, ProductSummary{
			ID:              product.ID,
			Name:            product.Name,
			Price:           product.Price,
			DiscountedPrice: product.DiscountedPrice(),
			DiscountPercent: product.DiscountPercent,
			PrimaryImageURL: product.PrimaryImageURL(),
			CompanyName:     product.Company.Name,
		})
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"products": summaries}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct 商品详情（公开）
func (h *Handler) GetProduct(c *gin.Context) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	product, err := h.ProductService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return
	}

	response.Success(c, gin.H{"product": product})
}
