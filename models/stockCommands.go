package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmdatafocus/shoptrack_backend/config"
	"github.com/mmdatafocus/shoptrack_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockProductForUpdate resolves a non-archived product under SELECT .. FOR
// UPDATE. Every stock-affecting path goes through this (or the bulk variant),
// so the read-check-write sequence on a product is serialized by the row lock.
func lockProductForUpdate(tx *gorm.DB, productId int) (*Product, error) {
	var product Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_active = ?", productId, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.UnknownProductError{ProductId: productId}
		}
		return nil, err
	}
	return &product, nil
}

// lockProductsForUpdate locks all requested products in a single query.
// ORDER BY id makes MySQL take the row locks in ascending id order for every
// caller, so two invoices touching overlapping product sets cannot deadlock.
// Archived and unknown ids are simply absent from the result map.
func lockProductsForUpdate(tx *gorm.DB, productIds []int) (map[int]*Product, error) {
	var products []*Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND is_active = ?", productIds, true).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	byId := make(map[int]*Product, len(products))
	for _, p := range products {
		byId[p.ID] = p
	}
	return byId, nil
}

// applyStockDelta mutates the cached stock and appends the matching ledger
// row inside the caller's transaction. The caller must already hold the
// product's row lock and have verified availability for outbound deltas.
func applyStockDelta(tx *gorm.DB, productId int, delta int, kind MovementKind, saleInvoiceId *int) error {
	if err := tx.Model(&Product{}).Where("id = ?", productId).
		Update("current_stock", gorm.Expr("current_stock + ?", delta)).Error; err != nil {
		return err
	}
	movement := StockMovement{
		ProductId:     productId,
		Qty:           delta,
		Kind:          kind,
		SaleInvoiceId: saleInvoiceId,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return err
	}
	return nil
}

// StockIn unconditionally increases a product's stock and appends a
// manual_in movement.
func StockIn(ctx context.Context, productId int, qty int) (*Product, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", utils.ErrInvalidInput)
	}

	release, _ := utils.StockLock(ctx, productId, "stockCommands.go", "StockIn")
	defer release()

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	product, err := lockProductForUpdate(tx, productId)
	if err != nil {
		return nil, err
	}
	if err := applyStockDelta(tx, product.ID, qty, MovementKindManualIn, nil); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	product.CurrentStock += qty
	return product, nil
}

// StockOut decreases a product's stock, failing with InsufficientStockError
// when the request exceeds what is on the shelf. Appends a manual_out
// movement on success.
func StockOut(ctx context.Context, productId int, qty int) (*Product, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", utils.ErrInvalidInput)
	}

	release, _ := utils.StockLock(ctx, productId, "stockCommands.go", "StockOut")
	defer release()

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	product, err := lockProductForUpdate(tx, productId)
	if err != nil {
		return nil, err
	}
	if product.CurrentStock < qty {
		return nil, &utils.InsufficientStockError{
			ProductId:   product.ID,
			ProductName: product.Name,
			Requested:   qty,
			Available:   product.CurrentStock,
		}
	}
	if err := applyStockDelta(tx, product.ID, -qty, MovementKindManualOut, nil); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	product.CurrentStock -= qty
	return product, nil
}
