package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/modish-shop/modish/internal/constants"
	"github.com/modish-shop/modish/internal/models"
	"github.com/modish-shop/modish/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Company{},
		&models.DeliveryMethod{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductColor{},
		&models.ProductSize{},
		&models.ProductOption{},
		&models.Order{},
		&models.OrderLineItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := NewCartService(repository.NewOrderRepository(db), repository.NewProductRepository(db), nil)
	return svc, db
}

type cartFixture struct {
	Product models.Product
	Color   models.ProductColor
	Size    models.ProductSize
	Option  models.ProductOption
}

func seedCartFixture(t *testing.T, db *gorm.DB) cartFixture {
	t.Helper()
	company := models.Company{Name: "Atelier Nord"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	delivery := models.DeliveryMethod{Name: "Standard Shipping", Fee: models.NewMoneyFromFloat(3.50)}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("create delivery method: %v", err)
	}
	category := models.Category{Slug: "tops", Name: "Tops"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	product := models.Product{
		Name:             "Relaxed Cotton Tee",
		CategoryID:       category.ID,
		CompanyID:        company.ID,
		DeliveryMethodID: delivery.ID,
		Price:            models.NewMoneyFromFloat(24.90),
		DiscountPercent:  20,
		Status:           constants.ProductStatusActive,
		Images: []models.ProductImage{
			{URL: "https://img.example.com/tee-alt.jpg", SortOrder: 2},
			{URL: "https://img.example.com/tee.jpg", IsPrimary: true, SortOrder: 1},
		},
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	color := models.ProductColor{Name: "red"}
	if err := db.Create(&color).Error; err != nil {
		t.Fatalf("create color: %v", err)
	}
	size := models.ProductSize{Name: "M"}
	if err := db.Create(&size).Error; err != nil {
		t.Fatalf("create size: %v", err)
	}
	option := models.ProductOption{ProductID: product.ID, ColorID: color.ID, SizeID: size.ID, Stock: 50}
	if err := db.Create(&option).Error; err != nil {
		t.Fatalf("create option: %v", err)
	}
	return cartFixture{Product: product, Color: color, Size: size, Option: option}
}

func TestGetOrCreateOpenCartIdempotent(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	first, err := svc.GetOrCreateOpenCart(7)
	if err != nil {
		t.Fatalf("first GetOrCreateOpenCart error: %v", err)
	}
	if first.Status != constants.OrderStatusOpenCart {
		t.Fatalf("expected status %s, got %s", constants.OrderStatusOpenCart, first.Status)
	}
	if first.OpenFlag == nil || !*first.OpenFlag {
		t.Fatalf("expected open flag set, got %+v", first.OpenFlag)
	}

	second, err := svc.GetOrCreateOpenCart(7)
	if err != nil {
		t.Fatalf("second GetOrCreateOpenCart error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same cart, got %d and %d", first.ID, second.ID)
	}
}

func TestGetOrCreateOpenCartPerUser(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	mine, err := svc.GetOrCreateOpenCart(1)
	if err != nil {
		t.Fatalf("GetOrCreateOpenCart error: %v", err)
	}
	theirs, err := svc.GetOrCreateOpenCart(2)
	if err != nil {
		t.Fatalf("GetOrCreateOpenCart error: %v", err)
	}
	if mine.ID == theirs.ID {
		t.Fatalf("expected distinct carts per user, both got %d", mine.ID)
	}
}

func TestAddOrMergeItemCreatesThenMerges(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	created, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "M", 2)
	if err != nil {
		t.Fatalf("first AddOrMergeItem error: %v", err)
	}
	if !created {
		t.Fatalf("expected a new line item on first add")
	}

	created, err = svc.AddOrMergeItem(7, fixture.Product.ID, "red", "M", 3)
	if err != nil {
		t.Fatalf("second AddOrMergeItem error: %v", err)
	}
	if created {
		t.Fatalf("expected merge into existing line item on second add")
	}

	var items []models.OrderLineItem
	if err := db.Find(&items).Error; err != nil {
		t.Fatalf("load line items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddOrMergeItemUnknownProduct(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartFixture(t, db)

	_, err := svc.AddOrMergeItem(7, 9999, "red", "M", 1)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no cart created on failed add, got %d orders", count)
	}
}

func TestAddOrMergeItemUnknownColor(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	_, err := svc.AddOrMergeItem(7, fixture.Product.ID, "chartreuse", "M", 1)
	if !errors.Is(err, ErrColorNotFound) {
		t.Fatalf("expected ErrColorNotFound, got %v", err)
	}
}

func TestAddOrMergeItemUnknownSize(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	_, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "XXL", 1)
	if !errors.Is(err, ErrSizeNotFound) {
		t.Fatalf("expected ErrSizeNotFound, got %v", err)
	}
}

func TestAddOrMergeItemUnavailableOption(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	// 颜色和尺码都存在，但该组合没有可售规格
	size := models.ProductSize{Name: "L"}
	if err := db.Create(&size).Error; err != nil {
		t.Fatalf("create size: %v", err)
	}

	_, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "L", 1)
	if !errors.Is(err, ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestAddOrMergeItemInvalidQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	for _, quantity := range []int{0, -3} {
		_, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "M", quantity)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity for quantity %d, got %v", quantity, err)
		}
	}

	var count int64
	if err := db.Model(&models.OrderLineItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count line items: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no line items, got %d", count)
	}
}

func TestListByUserWithoutCart(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	items, err := svc.ListByUser(7)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}

func TestListByUserEnrichedView(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	if _, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "M", 2); err != nil {
		t.Fatalf("AddOrMergeItem error: %v", err)
	}

	items, err := svc.ListByUser(7)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	view := items[0]
	if view.ProductName != "Relaxed Cotton Tee" {
		t.Fatalf("unexpected product name: %s", view.ProductName)
	}
	if view.ColorName != "red" || view.SizeName != "M" {
		t.Fatalf("unexpected variant: %s / %s", view.ColorName, view.SizeName)
	}
	if view.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Quantity)
	}
	if !view.UnitPrice.Decimal.Equal(decimal.NewFromFloat(24.90)) {
		t.Fatalf("unexpected unit price: %s", view.UnitPrice)
	}
	if !view.DiscountedPrice.Decimal.Equal(decimal.NewFromFloat(19.92)) {
		t.Fatalf("unexpected discounted price: %s", view.DiscountedPrice)
	}
	if view.PrimaryImageURL != "https://img.example.com/tee.jpg" {
		t.Fatalf("unexpected primary image: %s", view.PrimaryImageURL)
	}
	if view.CompanyName != "Atelier Nord" {
		t.Fatalf("unexpected company: %s", view.CompanyName)
	}
	if view.DeliveryMethodName != "Standard Shipping" {
		t.Fatalf("unexpected delivery method: %s", view.DeliveryMethodName)
	}
	if !view.DeliveryFee.Decimal.Equal(decimal.NewFromFloat(3.50)) {
		t.Fatalf("unexpected delivery fee: %s", view.DeliveryFee)
	}
}

func TestCheckoutWithoutCart(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	_, err := svc.Checkout(7, 1, 1, models.NewMoneyFromFloat(9.99))
	if !errors.Is(err, ErrNoOpenCart) {
		t.Fatalf("expected ErrNoOpenCart, got %v", err)
	}
}

func TestCheckoutInvalidInput(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	if _, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "M", 1); err != nil {
		t.Fatalf("AddOrMergeItem error: %v", err)
	}

	if _, err := svc.Checkout(7, fixture.Option.ID, 0, models.NewMoneyFromFloat(9.99)); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.Checkout(7, fixture.Option.ID, 1, models.NewMoneyFromFloat(-0.01)); !errors.Is(err, ErrInvalidTotalPrice) {
		t.Fatalf("expected ErrInvalidTotalPrice, got %v", err)
	}
}

func TestCheckoutMissingLineItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	if _, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "M", 1); err != nil {
		t.Fatalf("AddOrMergeItem error: %v", err)
	}

	_, err := svc.Checkout(7, fixture.Option.ID+100, 1, models.NewMoneyFromFloat(9.99))
	if !errors.Is(err, ErrLineItemNotFound) {
		t.Fatalf("expected ErrLineItemNotFound, got %v", err)
	}
}

func TestCheckoutOverwritesQuantityAndTotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	fixture := seedCartFixture(t, db)

	if _, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "M", 2); err != nil {
		t.Fatalf("AddOrMergeItem error: %v", err)
	}
	if _, err := svc.AddOrMergeItem(7, fixture.Product.ID, "red", "M", 3); err != nil {
		t.Fatalf("AddOrMergeItem error: %v", err)
	}

	items, err := svc.Checkout(7, fixture.Option.ID, 5, models.NewMoneyFromFloat(19.99))
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	if items[0].ProductName != "Relaxed Cotton Tee" || items[0].ColorName != "red" || items[0].SizeName != "M" {
		t.Fatalf("unexpected item: %+v", items[0])
	}

	var order models.Order
	if err := db.Where("user_id = ?", 7).First(&order).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if order.Status != constants.OrderStatusOpenCart {
		t.Fatalf("expected status %s after checkout, got %s", constants.OrderStatusOpenCart, order.Status)
	}
	if order.TotalPrice == nil || !order.TotalPrice.Decimal.Equal(decimal.NewFromFloat(19.99)) {
		t.Fatalf("unexpected total price: %+v", order.TotalPrice)
	}
}

func TestGenerateOrderNo(t *testing.T) {
	orderNo := generateOrderNo()
	if len(orderNo) != 20 {
		t.Fatalf("unexpected order no length: %s", orderNo)
	}
	if orderNo[:2] != "MD" {
		t.Fatalf("expected MD prefix, got %s", orderNo)
	}
}
