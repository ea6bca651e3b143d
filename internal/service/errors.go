package service

import "errors"

// 业务语义错误，由 HTTP 层统一映射成响应码
var (
	ErrNotFound           = errors.New("resource not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrColorNotFound      = errors.New("color not found")
	ErrSizeNotFound       = errors.New("size not found")
	ErrOptionNotFound     = errors.New("product option not found")
	ErrLineItemNotFound   = errors.New("cart line item not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidTotalPrice  = errors.New("total price must not be negative")
	ErrNoOpenCart         = errors.New("no open cart")
	ErrCartConflict       = errors.New("cart was modified concurrently, retry")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user account disabled")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidDisplayName = errors.New("invalid display name")
	ErrInvalidPostTitle   = errors.New("post title required")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
)
