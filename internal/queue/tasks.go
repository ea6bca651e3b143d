package queue

import (
	"encoding/json"

	"github.com/modish-shop/modish/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCheckoutReceipt 结算回执邮件任务
	TaskCheckoutReceipt = constants.TaskCheckoutReceipt
	// TaskWelcomeEmail 注册欢迎邮件任务
	TaskWelcomeEmail = constants.TaskWelcomeEmail
)

// CheckoutReceiptPayload 结算回执任务载荷
type CheckoutReceiptPayload struct {
	OrderID uint `json:"order_id"`
}

// WelcomeEmailPayload 欢迎邮件任务载荷
type WelcomeEmailPayload struct {
	UserID uint `json:"user_id"`
}

// NewCheckoutReceiptTask 创建结算回执任务
func NewCheckoutReceiptTask(payload CheckoutReceiptPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckoutReceipt, body), nil
}

// NewWelcomeEmailTask 创建欢迎邮件任务
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWelcomeEmail, body), nil
}
