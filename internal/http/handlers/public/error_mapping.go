package public

import (
	"errors"

	"github.com/modish-shop/modish/internal/http/response"
	"github.com/modish-shop/modish/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartAddErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrColorNotFound, code: response.CodeNotFound, msg: "color not found"},
	{target: service.ErrSizeNotFound, code: response.CodeNotFound, msg: "size not found"},
	{target: service.ErrOptionNotFound, code: response.CodeNotFound, msg: "this color and size is not available for the product"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrCartConflict, code: response.CodeConflict, msg: "cart was modified concurrently, please retry"},
}

var cartCheckoutErrorRules = []mappedHandlerError{
	{target: service.ErrNoOpenCart, code: response.CodeBadRequest, msg: "no open cart to checkout"},
	{target: service.ErrLineItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrInvalidTotalPrice, code: response.CodeBadRequest, msg: "total price must not be negative"},
	{target: service.ErrCartConflict, code: response.CodeConflict, msg: "cart was modified concurrently, please retry"},
}

var authRegisterErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrEmailExists, code: response.CodeConflict, msg: "email already registered"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet policy"},
	{target: service.ErrInvalidDisplayName, code: response.CodeBadRequest, msg: "display name must be 2-30 characters"},
}

var authLoginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "account disabled"},
}

func respondCartAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartAddErrorRules, response.CodeInternal, "failed to add item to cart")
}

func respondCartCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartCheckoutErrorRules, response.CodeInternal, "failed to checkout cart")
}
