package main

import (
	"github.com/modish-shop/modish/internal/config"
	"github.com/modish-shop/modish/internal/constants"
	"github.com/modish-shop/modish/internal/logger"
	"github.com/modish-shop/modish/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "tops", Name: "Tops", SortOrder: 1},
		{Slug: "bottoms", Name: "Bottoms", SortOrder: 2},
		{Slug: "outerwear", Name: "Outerwear", SortOrder: 3},
	}
	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("failed to create category %s: %v", cat.Slug, err)
				continue
			}
			stdLog.Printf("created category: %s", cat.Slug)
			categoryIDs[cat.Slug] = cat.ID
			continue
		}
		stdLog.Printf("category already exists: %s", cat.Slug)
		categoryIDs[cat.Slug] = existing.ID
	}

	// 添加品牌商家
	companies := []models.Company{
		{Name: "Atelier Nord"},
		{Name: "Maison Rue"},
	}
	companyIDs := map[string]uint{}
	for _, company := range companies {
		var existing models.Company
		if err := models.DB.Where("name = ?", company.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&company).Error; err != nil {
				stdLog.Printf("failed to create company %s: %v", company.Name, err)
				continue
			}
			stdLog.Printf("created company: %s", company.Name)
			companyIDs[company.Name] = company.ID
			continue
		}
		stdLog.Printf("company already exists: %s", company.Name)
		companyIDs[company.Name] = existing.ID
	}

	// 添加配送方式
	deliveryMethods := []models.DeliveryMethod{
		{Name: "Standard Shipping", Fee: models.NewMoneyFromDecimal(decimal.NewFromFloat(3.50))},
		{Name: "Express Shipping", Fee: models.NewMoneyFromDecimal(decimal.NewFromFloat(7.90))},
		{Name: "Store Pickup", Fee: models.NewMoneyFromDecimal(decimal.Zero)},
	}
	deliveryMethodIDs := map[string]uint{}
	for _, method := range deliveryMethods {
		var existing models.DeliveryMethod
		if err := models.DB.Where("name = ?", method.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&method).Error; err != nil {
				stdLog.Printf("failed to create delivery method %s: %v", method.Name, err)
				continue
			}
			stdLog.Printf("created delivery method: %s", method.Name)
			deliveryMethodIDs[method.Name] = method.ID
			continue
		}
		stdLog.Printf("delivery method already exists: %s", method.Name)
		deliveryMethodIDs[method.Name] = existing.ID
	}

	// 添加颜色
	colorNames := []string{"red", "black", "white", "navy"}
	colorIDs := map[string]uint{}
	for _, name := range colorNames {
		var existing models.ProductColor
		if err := models.DB.Where("name = ?", name).First(&existing).Error; err != nil {
			color := models.ProductColor{Name: name}
			if err := models.DB.Create(&color).Error; err != nil {
				stdLog.Printf("failed to create color %s: %v", name, err)
				continue
			}
			stdLog.Printf("created color: %s", name)
			colorIDs[name] = color.ID
			continue
		}
		colorIDs[name] = existing.ID
	}

	// 添加尺码
	sizes := []models.ProductSize{
		{Name: "XS", SortOrder: 1},
		{Name: "S", SortOrder: 2},
		{Name: "M", SortOrder: 3},
		{Name: "L", SortOrder: 4},
		{Name: "XL", SortOrder: 5},
	}
	sizeIDs := map[string]uint{}
	for _, size := range sizes {
		var existing models.ProductSize
		if err := models.DB.Where("name = ?", size.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&size).Error; err != nil {
				stdLog.Printf("failed to create size %s: %v", size.Name, err)
				continue
			}
			stdLog.Printf("created size: %s", size.Name)
			sizeIDs[size.Name] = size.ID
			continue
		}
		sizeIDs[size.Name] = existing.ID
	}

	// 添加商品
	products := []models.Product{
		{
			Name:             "Relaxed Cotton Tee",
			Description:      "Soft mid-weight cotton tee with a relaxed fit and dropped shoulders.",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(24.90)),
			DiscountPercent:  20,
			CategoryID:       categoryIDs["tops"],
			CompanyID:        companyIDs["Atelier Nord"],
			DeliveryMethodID: deliveryMethodIDs["Standard Shipping"],
			Status:           constants.ProductStatusActive,
			SortOrder:        1,
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800", IsPrimary: true, SortOrder: 1},
				{URL: "https://images.unsplash.com/photo-1503341504253-dff4815485f1?w=800", SortOrder: 2},
			},
		},
		{
			Name:             "Tapered Denim Pants",
			Description:      "Stonewashed tapered denim with a mid rise and cropped ankle.",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(59.00)),
			DiscountPercent:  0,
			CategoryID:       categoryIDs["bottoms"],
			CompanyID:        companyIDs["Maison Rue"],
			DeliveryMethodID: deliveryMethodIDs["Standard Shipping"],
			Status:           constants.ProductStatusActive,
			SortOrder:        2,
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=800", IsPrimary: true, SortOrder: 1},
			},
		},
		{
			Name:             "Wool Blend Overcoat",
			Description:      "Double-breasted wool blend overcoat with a satin lining.",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(189.00)),
			DiscountPercent:  15,
			CategoryID:       categoryIDs["outerwear"],
			CompanyID:        companyIDs["Maison Rue"],
			DeliveryMethodID: deliveryMethodIDs["Express Shipping"],
			Status:           constants.ProductStatusActive,
			SortOrder:        3,
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1539533018447-63fcce2678e3?w=800", IsPrimary: true, SortOrder: 1},
			},
		},
	}
	productIDs := map[string]uint{}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("failed to create product %s: %v", product.Name, err)
				continue
			}
			stdLog.Printf("created product: %s", product.Name)
			productIDs[product.Name] = product.ID
			continue
		}
		stdLog.Printf("product already exists: %s", product.Name)
		productIDs[product.Name] = existing.ID
	}

	// 为每个商品添加颜色尺码组合
	optionColors := map[string][]string{
		"Relaxed Cotton Tee":  {"red", "black", "white"},
		"Tapered Denim Pants": {"black", "navy"},
		"Wool Blend Overcoat": {"black", "navy"},
	}
	optionSizes := []string{"S", "M", "L"}
	created := 0
	for productName, colors := range optionColors {
		productID := productIDs[productName]
		if productID == 0 {
			continue
		}
		for _, colorName := range colors {
			colorID := colorIDs[colorName]
			if colorID == 0 {
				continue
			}
			for _, sizeName := range optionSizes {
				sizeID := sizeIDs[sizeName]
				if sizeID == 0 {
					continue
				}
				var existing models.ProductOption
				err := models.DB.Where("product_id = ? AND color_id = ? AND size_id = ?", productID, colorID, sizeID).
					First(&existing).Error
				if err == nil {
					continue
				}
				option := models.ProductOption{
					ProductID: productID,
					ColorID:   colorID,
					SizeID:    sizeID,
					Stock:     50,
				}
				if err := models.DB.Create(&option).Error; err != nil {
					stdLog.Printf("failed to create option %s/%s/%s: %v", productName, colorName, sizeName, err)
					continue
				}
				created++
			}
		}
	}
	stdLog.Printf("created %d product options", created)

	stdLog.Printf("seed finished")
}
