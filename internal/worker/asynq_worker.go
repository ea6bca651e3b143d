package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/modish-shop/modish/internal/logger"
	"github.com/modish-shop/modish/internal/provider"
	"github.com/modish-shop/modish/internal/queue"
	"github.com/modish-shop/modish/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCheckoutReceipt, c.handleCheckoutReceipt)
	mux.HandleFunc(queue.TaskWelcomeEmail, c.handleWelcomeEmail)
}

func (c *Consumer) handleCheckoutReceipt(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_checkout_receipt_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CheckoutReceiptPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_checkout_receipt_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_checkout_receipt_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_checkout_receipt_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_checkout_receipt_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_checkout_receipt_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_checkout_receipt_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_checkout_receipt_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	items, err := c.OrderRepo.ListLineItems(order.ID)
	if err != nil {
		logger.Warnw("worker_checkout_receipt_fetch_items_failed", "order_id", order.ID, "error", err)
		return err
	}
	lines := make([]service.CheckoutReceiptLine, 0, len(items))
	for i := range items {
		item := &items[i]
		lines = append(lines, service.CheckoutReceiptLine{
			ProductName: item.ProductOption.Product.Name,
			ColorName:   item.ProductOption.Color.Name,
			SizeName:    item.ProductOption.Size.Name,
			Quantity:    item.Quantity,
		})
	}

	if err := c.EmailService.SendCheckoutReceipt(user.Email, order.OrderNo, lines, order.TotalPrice); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_checkout_receipt_skip_email_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_checkout_receipt_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", user.Email,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleWelcomeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_welcome_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_welcome_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 {
		logger.Debugw("worker_welcome_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	user, err := c.UserRepo.GetByID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_welcome_email_fetch_user_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_welcome_email_skip_empty_receiver", "user_id", payload.UserID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_welcome_email_skip_email_service_nil", "user_id", user.ID)
		return nil
	}
	if err := c.EmailService.SendWelcomeEmail(user.Email, user.DisplayName); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_welcome_email_skip_email_disabled", "user_id", user.ID)
			return nil
		}
		logger.Warnw("worker_welcome_email_send_failed", "user_id", user.ID, "receiver_email", user.Email, "error", err)
		return err
	}
	return nil
}
