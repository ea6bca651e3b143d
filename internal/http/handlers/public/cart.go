package public

import (
	"github.com/modish-shop/modish/internal/http/response"
	"github.com/modish-shop/modish/internal/models"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ID       uint   `json:"id" binding:"required"`
	Color    string `json:"color" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity"`
}

// CheckoutCartRequest 结算请求
type CheckoutCartRequest struct {
	ID         uint         `json:"id" binding:"required"`
	Quantity   int          `json:"quantity"`
	TotalPrice models.Money `json:"total_price"`
}

// GetCart 获取购物车内容
// 尚无购物车属于正常情况，返回空提示而不是错误。
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch cart", err)
		return
	}
	if len(items) == 0 {
		response.SuccessWithMsg(c, "cart is empty", gin.H{"items": []interface{}{}})
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddCartItem 向购物车添加商品规格
// 同一规格重复添加会合并为一行并累加数量。
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	created, err := h.CartService.AddOrMergeItem(uid, req.ID, req.Color, req.Size, req.Quantity)
	if err != nil {
		respondCartAddError(c, err)
		return
	}
	if created {
		response.SuccessWithMsg(c, "item added to cart", gin.H{"created": true})
		return
	}
	response.SuccessWithMsg(c, "item quantity updated", gin.H{"created": false})
}

// CheckoutCart 结算购物车
// 数量与总价以客户端确认页提交值为准，成功后返回最新购物车内容。
func (h *Handler) CheckoutCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	items, err := h.CartService.Checkout(uid, req.ID, req.Quantity, req.TotalPrice)
	if err != nil {
		respondCartCheckoutError(c, err)
		return
	}
	response.SuccessWithMsg(c, "checkout confirmed", gin.H{"items": items})
}
