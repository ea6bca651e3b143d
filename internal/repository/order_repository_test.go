package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/modish-shop/modish/internal/constants"
	"github.com/modish-shop/modish/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderLineItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewOrderRepository(db), db
}

func createOpenCart(t *testing.T, repo *GormOrderRepository, userID uint, orderNo string) *models.Order {
	t.Helper()
	open := true
	order := &models.Order{
		OrderNo:  orderNo,
		UserID:   userID,
		OpenFlag: &open,
		Status:   constants.OrderStatusOpenCart,
	}
	if err := repo.CreateOpenCart(order); err != nil {
		t.Fatalf("create open cart: %v", err)
	}
	return order
}

func TestCreateOpenCartDuplicate(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createOpenCart(t, repo, 7, "MD202608270001")

	open := true
	err := repo.CreateOpenCart(&models.Order{
		OrderNo:  "MD202608270002",
		UserID:   7,
		OpenFlag: &open,
		Status:   constants.OrderStatusOpenCart,
	})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestOpenFlagNullDoesNotCollide(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	cart := createOpenCart(t, repo, 7, "MD202608270001")

	// 关单后 open_flag 置 NULL，不再占用唯一索引
	if err := db.Model(&models.Order{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{"open_flag": nil, "status": constants.OrderStatusPlaced}).Error; err != nil {
		t.Fatalf("close cart: %v", err)
	}

	createOpenCart(t, repo, 7, "MD202608270002")

	fetched, err := repo.GetOpenCartByUser(7)
	if err != nil {
		t.Fatalf("GetOpenCartByUser error: %v", err)
	}
	if fetched == nil || fetched.OrderNo != "MD202608270002" {
		t.Fatalf("expected the new open cart, got %+v", fetched)
	}
}

func TestGetOpenCartByUserMissing(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	cart, err := repo.GetOpenCartByUser(42)
	if err != nil {
		t.Fatalf("GetOpenCartByUser error: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected nil cart, got %+v", cart)
	}
}

func TestIncrementLineItemQuantity(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	cart := createOpenCart(t, repo, 7, "MD202608270001")

	merged, err := repo.IncrementLineItemQuantity(cart.ID, 10, 2)
	if err != nil {
		t.Fatalf("IncrementLineItemQuantity error: %v", err)
	}
	if merged {
		t.Fatalf("expected miss before line item exists")
	}

	if err := repo.CreateLineItem(&models.OrderLineItem{
		OrderID:         cart.ID,
		ProductOptionID: 10,
		ProductID:       1,
		Quantity:        2,
	}); err != nil {
		t.Fatalf("create line item: %v", err)
	}

	merged, err = repo.IncrementLineItemQuantity(cart.ID, 10, 3)
	if err != nil {
		t.Fatalf("IncrementLineItemQuantity error: %v", err)
	}
	if !merged {
		t.Fatalf("expected hit on existing line item")
	}

	item, err := repo.GetLineItem(cart.ID, 10)
	if err != nil {
		t.Fatalf("GetLineItem error: %v", err)
	}
	if item == nil || item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", item)
	}
}

func TestCreateLineItemDuplicate(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	cart := createOpenCart(t, repo, 7, "MD202608270001")

	first := &models.OrderLineItem{OrderID: cart.ID, ProductOptionID: 10, ProductID: 1, Quantity: 1}
	if err := repo.CreateLineItem(first); err != nil {
		t.Fatalf("create line item: %v", err)
	}

	second := &models.OrderLineItem{OrderID: cart.ID, ProductOptionID: 10, ProductID: 1, Quantity: 1}
	if err := repo.CreateLineItem(second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestUpdateLineItemQuantity(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	cart := createOpenCart(t, repo, 7, "MD202608270001")

	updated, err := repo.UpdateLineItemQuantity(cart.ID, 10, 5)
	if err != nil {
		t.Fatalf("UpdateLineItemQuantity error: %v", err)
	}
	if updated {
		t.Fatalf("expected miss before line item exists")
	}

	if err := repo.CreateLineItem(&models.OrderLineItem{
		OrderID:         cart.ID,
		ProductOptionID: 10,
		ProductID:       1,
		Quantity:        2,
	}); err != nil {
		t.Fatalf("create line item: %v", err)
	}

	updated, err = repo.UpdateLineItemQuantity(cart.ID, 10, 5)
	if err != nil {
		t.Fatalf("UpdateLineItemQuantity error: %v", err)
	}
	if !updated {
		t.Fatalf("expected hit on existing line item")
	}

	item, err := repo.GetLineItem(cart.ID, 10)
	if err != nil {
		t.Fatalf("GetLineItem error: %v", err)
	}
	if item == nil || item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", item)
	}
}

func TestUpdateTotalPrice(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	cart := createOpenCart(t, repo, 7, "MD202608270001")

	if err := repo.UpdateTotalPrice(cart.ID, models.NewMoneyFromFloat(19.99)); err != nil {
		t.Fatalf("UpdateTotalPrice error: %v", err)
	}

	fetched, err := repo.GetByID(cart.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if fetched == nil || fetched.TotalPrice == nil || !fetched.TotalPrice.Decimal.Equal(decimal.NewFromFloat(19.99)) {
		t.Fatalf("unexpected total price: %+v", fetched)
	}
}

func TestTransactionRollback(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	cart := createOpenCart(t, repo, 7, "MD202608270001")

	wantErr := errors.New("abort")
	err := repo.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if err := txRepo.UpdateTotalPrice(cart.ID, models.NewMoneyFromFloat(99.00)); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected transaction error, got %v", err)
	}

	fetched, err := repo.GetByID(cart.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if fetched.TotalPrice != nil {
		t.Fatalf("expected rollback to keep total price NULL, got %+v", fetched.TotalPrice)
	}
}
