package models_test

import (
	"errors"
	"testing"

	"github.com/mmdatafocus/shoptrack_backend/config"
	"github.com/mmdatafocus/shoptrack_backend/models"
	"github.com/mmdatafocus/shoptrack_backend/utils"
)

func TestStockCommands_AdjustAndRebuild(t *testing.T) {
	ctx := setupIntegrationEnv(t)
	db := config.GetDB()

	product := seedProduct(t, ctx, "PRT-001", 4500, 0)

	after, err := models.StockIn(ctx, product.ID, 10)
	if err != nil {
		t.Fatalf("StockIn: %v", err)
	}
	if after.CurrentStock != 10 {
		t.Fatalf("expected stock 10; got %d", after.CurrentStock)
	}

	after, err = models.StockOut(ctx, product.ID, 4)
	if err != nil {
		t.Fatalf("StockOut: %v", err)
	}
	if after.CurrentStock != 6 {
		t.Fatalf("expected stock 6; got %d", after.CurrentStock)
	}

	// Draining past zero must fail and change nothing.
	_, err = models.StockOut(ctx, product.ID, 7)
	if !utils.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock; got %v", err)
	}
	var current models.Product
	if err := db.WithContext(ctx).First(&current, product.ID).Error; err != nil {
		t.Fatalf("fetch product: %v", err)
	}
	if current.CurrentStock != 6 {
		t.Fatalf("failed removal must not change stock; got %d", current.CurrentStock)
	}

	// Draining to exactly zero is fine.
	after, err = models.StockOut(ctx, product.ID, 6)
	if err != nil {
		t.Fatalf("StockOut to zero: %v", err)
	}
	if after.CurrentStock != 0 {
		t.Fatalf("expected stock 0; got %d", after.CurrentStock)
	}

	// Non-positive quantities are caller errors for both directions.
	if _, err := models.StockIn(ctx, product.ID, 0); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected qty=0 rejection; got %v", err)
	}
	if _, err := models.StockOut(ctx, product.ID, -3); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected negative qty rejection; got %v", err)
	}

	// Unknown product.
	if _, err := models.StockIn(ctx, 999999, 1); !utils.IsUnknownProduct(err) {
		t.Fatalf("expected unknown product; got %v", err)
	}

	movements, err := models.GetStockMovements(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetStockMovements: %v", err)
	}
	if len(movements) != 3 {
		t.Fatalf("expected 3 ledger rows; got %d", len(movements))
	}
	assertLedgerMatchesCache(t, ctx, product.ID)

	// Drift the cache on purpose; rebuild must restore the ledger sum.
	if err := db.Exec("UPDATE products SET current_stock = 42 WHERE id = ?", product.ID).Error; err != nil {
		t.Fatalf("drift cache: %v", err)
	}
	rebuilt, err := models.RebuildProductStock(ctx, product.ID)
	if err != nil {
		t.Fatalf("RebuildProductStock: %v", err)
	}
	if rebuilt != 0 {
		t.Fatalf("expected rebuilt stock 0; got %d", rebuilt)
	}
	assertLedgerMatchesCache(t, ctx, product.ID)
}

func TestLowStockEvaluator(t *testing.T) {
	ctx := setupIntegrationEnv(t)
	db := config.GetDB()

	var phones models.ProductCategory
	if err := db.WithContext(ctx).Where(models.ProductCategory{Name: "Phones"}).
		FirstOrCreate(&phones).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	mk := func(sku string, minStock, stock int, categoryId int) *models.Product {
		p, err := models.CreateProduct(ctx, &models.NewProduct{
			Sku: sku, Name: "Product " + sku, MinStock: minStock, CategoryId: categoryId,
		})
		if err != nil {
			t.Fatalf("CreateProduct(%s): %v", sku, err)
		}
		if stock > 0 {
			if _, err := models.StockIn(ctx, p.ID, stock); err != nil {
				t.Fatalf("StockIn(%s): %v", sku, err)
			}
		}
		return p
	}

	atThreshold := mk("LOW-EQ", 5, 5, phones.ID)
	below := mk("LOW-BELOW", 5, 1, 0)
	mk("LOW-OK", 5, 9, phones.ID)
	archived := mk("LOW-GONE", 5, 1, 0)
	if _, err := models.ArchiveProduct(ctx, archived.ID); err != nil {
		t.Fatalf("ArchiveProduct: %v", err)
	}

	low, err := models.GetLowStockProducts(ctx, nil)
	if err != nil {
		t.Fatalf("GetLowStockProducts: %v", err)
	}
	ids := map[int]*models.LowStockProduct{}
	for _, p := range low {
		ids[p.ID] = p
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 low-stock products; got %d", len(ids))
	}
	// Equality with the threshold counts as low.
	if _, ok := ids[atThreshold.ID]; !ok {
		t.Fatalf("product at threshold missing from low-stock list")
	}
	if _, ok := ids[below.ID]; !ok {
		t.Fatalf("product below threshold missing from low-stock list")
	}
	if _, ok := ids[archived.ID]; ok {
		t.Fatalf("archived product must not appear in low-stock list")
	}
	if entry := ids[atThreshold.ID]; entry.Category != "Phones" {
		t.Fatalf("expected category name resolved; got %q", entry.Category)
	}

	// Category filter.
	scoped, err := models.GetLowStockProducts(ctx, &phones.ID)
	if err != nil {
		t.Fatalf("GetLowStockProducts(category): %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != atThreshold.ID {
		t.Fatalf("unexpected category-scoped result: %+v", scoped)
	}
}
