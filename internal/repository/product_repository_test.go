package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/modish-shop/modish/internal/constants"
	"github.com/modish-shop/modish/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Company{},
		&models.DeliveryMethod{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductColor{},
		&models.ProductSize{},
		&models.ProductOption{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, price float64, status string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:             name,
		CategoryID:       categoryID,
		CompanyID:        1,
		DeliveryMethodID: 1,
		Price:            models.NewMoneyFromFloat(price),
		Status:           status,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestGetOptionByTriple(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, db, "Relaxed Cotton Tee", 1, 24.90, constants.ProductStatusActive)

	color := models.ProductColor{Name: "red"}
	if err := db.Create(&color).Error; err != nil {
		t.Fatalf("create color failed: %v", err)
	}
	size := models.ProductSize{Name: "M"}
	if err := db.Create(&size).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}
	option := models.ProductOption{ProductID: product.ID, ColorID: color.ID, SizeID: size.ID, Stock: 10}
	if err := db.Create(&option).Error; err != nil {
		t.Fatalf("create option failed: %v", err)
	}

	got, err := repo.GetOption(product.ID, color.ID, size.ID)
	if err != nil {
		t.Fatalf("GetOption error: %v", err)
	}
	if got == nil || got.ID != option.ID {
		t.Fatalf("unexpected option: %+v", got)
	}

	missing, err := repo.GetOption(product.ID, color.ID, size.ID+1)
	if err != nil {
		t.Fatalf("GetOption error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown triple, got %+v", missing)
	}
}

func TestGetColorAndSizeByName(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)

	if err := db.Create(&models.ProductColor{Name: "navy"}).Error; err != nil {
		t.Fatalf("create color failed: %v", err)
	}
	if err := db.Create(&models.ProductSize{Name: "L"}).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}

	color, err := repo.GetColorByName("navy")
	if err != nil {
		t.Fatalf("GetColorByName error: %v", err)
	}
	if color == nil || color.Name != "navy" {
		t.Fatalf("unexpected color: %+v", color)
	}

	size, err := repo.GetSizeByName("L")
	if err != nil {
		t.Fatalf("GetSizeByName error: %v", err)
	}
	if size == nil || size.Name != "L" {
		t.Fatalf("unexpected size: %+v", size)
	}

	unknown, err := repo.GetColorByName("chartreuse")
	if err != nil {
		t.Fatalf("GetColorByName error: %v", err)
	}
	if unknown != nil {
		t.Fatalf("expected nil for unknown color, got %+v", unknown)
	}
}

func TestListFiltersAndSort(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)

	createTestProduct(t, db, "Relaxed Cotton Tee", 1, 24.90, constants.ProductStatusActive)
	createTestProduct(t, db, "Tapered Denim Pants", 2, 59.00, constants.ProductStatusActive)
	createTestProduct(t, db, "Wool Blend Overcoat", 3, 189.00, constants.ProductStatusInactive)

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("expected 2 active products, got total=%d len=%d", total, len(products))
	}

	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true, CategoryID: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || products[0].Name != "Tapered Denim Pants" {
		t.Fatalf("unexpected category filter result: total=%d", total)
	}

	products, _, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true, Sort: constants.ProductSortPriceDesc})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if products[0].Name != "Tapered Denim Pants" {
		t.Fatalf("expected price desc order, got %s first", products[0].Name)
	}

	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true, Search: "Denim"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || products[0].Name != "Tapered Denim Pants" {
		t.Fatalf("unexpected search result: total=%d", total)
	}
}
