package constants

// 订单状态常量
const (
	OrderStatusOpenCart  = "open_cart"
	OrderStatusPlaced    = "placed"
	OrderStatusCanceled  = "canceled"
	OrderStatusCompleted = "completed"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 商品上架状态常量
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// 商品排序方式常量
const (
	ProductSortLatest    = "latest"
	ProductSortPriceAsc  = "price_asc"
	ProductSortPriceDesc = "price_desc"
)

// 队列常量
const (
	QueueDefault        = "default"
	TaskCheckoutReceipt = "order:checkout_receipt"
	TaskWelcomeEmail    = "user:welcome_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "md"
)

// 昵称长度限制（与注册校验保持一致）
const (
	DisplayNameMinLength = 2
	DisplayNameMaxLength = 30
)
