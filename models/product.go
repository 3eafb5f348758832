package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmdatafocus/shoptrack_backend/config"
	"github.com/mmdatafocus/shoptrack_backend/utils"
	"github.com/shopspring/decimal"
)

// Product is the catalog row the ledger engine conditionally mutates.
// CurrentStock is a cached derivation of the movement ledger; only the stock
// commands and the invoice engine may write it, always under a row lock.
type Product struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Sku            string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Name           string          `gorm:"size:150;not null" json:"name" binding:"required"`
	Brand          string          `gorm:"size:100;default:null" json:"brand"`
	Model          string          `gorm:"size:100;default:null" json:"model"`
	CategoryId     int             `gorm:"index;default:null" json:"category_id"`
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"purchase_price"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"selling_price"`
	TaxPercent     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_percent"`
	WarrantyMonths int             `gorm:"default:0" json:"warranty_months"`
	MinStock       int             `gorm:"not null;default:0" json:"min_stock"`
	CurrentStock   int             `gorm:"not null;default:0" json:"current_stock"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Sku            string          `json:"sku" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	CategoryId     int             `json:"category_id"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	TaxPercent     decimal.Decimal `json:"tax_percent"`
	WarrantyMonths int             `json:"warranty_months"`
	MinStock       int             `json:"min_stock"`
}

func (input *NewProduct) validate(ctx context.Context) error {
	if input.Sku == "" || input.Name == "" {
		return fmt.Errorf("%w: sku and name are required", utils.ErrInvalidInput)
	}
	if input.MinStock < 0 {
		return fmt.Errorf("%w: min_stock cannot be negative", utils.ErrInvalidInput)
	}
	if input.SellingPrice.IsNegative() || input.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: prices cannot be negative", utils.ErrInvalidInput)
	}
	// sku is immutable once issued; the unique index backstops this check
	// when two creates race
	if err := utils.ValidateUnique[Product](ctx, "sku", input.Sku, 0); err != nil {
		return fmt.Errorf("%w: %s", utils.ErrInvalidInput, err.Error())
	}
	if input.CategoryId > 0 {
		if err := utils.ValidateResourceId[ProductCategory](ctx, input.CategoryId); err != nil {
			return errors.New("category not found")
		}
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	db := config.GetDB()

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	product := Product{
		Sku:            input.Sku,
		Name:           input.Name,
		Brand:          input.Brand,
		Model:          input.Model,
		CategoryId:     input.CategoryId,
		PurchasePrice:  input.PurchasePrice,
		SellingPrice:   input.SellingPrice,
		TaxPercent:     input.TaxPercent,
		WarrantyMonths: input.WarrantyMonths,
		MinStock:       input.MinStock,
		IsActive:       utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		// Two concurrent creates with the same sku can both pass the
		// pre-insert check; the unique index catches the loser.
		if utils.IsDuplicateEntry(err) {
			return nil, fmt.Errorf("%w: duplicate sku", utils.ErrInvalidInput)
		}
		return nil, err
	}
	return &product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	db := config.GetDB()
	var product Product
	if err := db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &product, nil
}

// GetProducts lists non-archived products, newest first.
func GetProducts(ctx context.Context) ([]*Product, error) {
	db := config.GetDB()
	var products []*Product
	if err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ArchiveProduct soft-deletes a product. Historical ledger entries and
// invoices keep referencing it; it only disappears from selection lists.
func ArchiveProduct(ctx context.Context, id int) (*Product, error) {
	db := config.GetDB()
	var product Product
	if err := db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&product).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// LowStockProduct is the under-threshold read model, category name resolved.
type LowStockProduct struct {
	ID           int    `json:"id"`
	Sku          string `json:"sku"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	CategoryId   int    `json:"category_id"`
	Category     string `json:"category"`
}

// GetLowStockProducts returns non-archived products at or below their
// minimum stock threshold, optionally filtered by category. Pure read over
// the catalog cache, which the engine keeps consistent with the ledger.
func GetLowStockProducts(ctx context.Context, categoryId *int) ([]*LowStockProduct, error) {
	db := config.GetDB()

	dbCtx := db.WithContext(ctx).
		Model(&Product{}).
		Where("is_active = ?", true).
		Where("current_stock <= min_stock")
	if categoryId != nil && *categoryId > 0 {
		dbCtx = dbCtx.Where("category_id = ?", *categoryId)
	}

	var products []*Product
	if err := dbCtx.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}

	nameMap, err := getCategoryNameMap(ctx)
	if err != nil {
		// name resolution is cosmetic; don't fail the view over the cache
		config.LogError(config.GetLogger(), "product.go", "GetLowStockProducts", "category name map", nil, err)
		nameMap = map[int]string{}
	}

	result := make([]*LowStockProduct, 0, len(products))
	for _, p := range products {
		result = append(result, &LowStockProduct{
			ID:           p.ID,
			Sku:          p.Sku,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			CategoryId:   p.CategoryId,
			Category:     nameMap[p.CategoryId],
		})
	}
	return result, nil
}
