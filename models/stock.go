package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmdatafocus/shoptrack_backend/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockMovement is the append-only stock ledger: one row per stock-changing
// event, signed quantity delta. Source of truth for reconstructing
// products.current_stock; corrections are new offsetting movements, never
// edits.
type StockMovement struct {
	ID            int          `gorm:"primary_key" json:"id"`
	ProductId     int          `gorm:"index;not null" json:"product_id"`
	Qty           int          `gorm:"not null" json:"qty"`
	Kind          MovementKind `gorm:"type:enum('sale','manual_in','manual_out');not null;index" json:"kind"`
	SaleInvoiceId *int         `gorm:"index;default:null" json:"sale_invoice_id"`
	CreatedAt     time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
}

// BeforeSave enforces ledger invariants.
//
// CRITICAL: downstream consistency checks (rebuild, reports) assume the sign
// of Qty always matches Kind. A sale or manual_out row with a positive delta
// would silently corrupt the current_stock derivation.
func (m *StockMovement) BeforeSave(tx *gorm.DB) error {
	if !m.Kind.Valid() {
		return fmt.Errorf("invalid movement kind %q", string(m.Kind))
	}
	if m.Qty == 0 {
		return errors.New("stock movement qty cannot be zero")
	}
	if m.Kind.Inbound() && m.Qty < 0 {
		return fmt.Errorf("%s movement must have a positive qty", string(m.Kind))
	}
	if !m.Kind.Inbound() && m.Qty > 0 {
		return fmt.Errorf("%s movement must have a negative qty", string(m.Kind))
	}
	if m.Kind == MovementKindSale && m.SaleInvoiceId == nil {
		return errors.New("sale movement requires an invoice reference")
	}
	return nil
}

// The ledger is append-only.

func (m *StockMovement) BeforeUpdate(tx *gorm.DB) error {
	return errors.New("stock movements are immutable; append an offsetting movement instead")
}

func (m *StockMovement) BeforeDelete(tx *gorm.DB) error {
	return errors.New("stock movements are immutable; append an offsetting movement instead")
}

func GetStockMovements(ctx context.Context, productId int) ([]*StockMovement, error) {
	db := config.GetDB()
	var movements []*StockMovement
	if err := db.WithContext(ctx).
		Where("product_id = ?", productId).
		Order("id").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// LedgerQtySum returns the sum of all movement deltas for a product, read
// through tx so uncommitted rows of the caller's transaction are visible.
func LedgerQtySum(tx *gorm.DB, productId int) (int, error) {
	var sum int
	if err := tx.Model(&StockMovement{}).
		Select("COALESCE(SUM(qty), 0)").
		Where("product_id = ?", productId).
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

// RebuildProductStock recomputes the cached current_stock from the ledger
// under a row lock and returns the rebuilt value. Used by the stock-rebuild
// tool and by drift checks; in normal operation the incremental updates in
// the commands keep the cache exact.
func RebuildProductStock(ctx context.Context, productId int) (int, error) {
	db := config.GetDB()

	tx := db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	var product Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, productId).Error; err != nil {
		return 0, fmt.Errorf("product %d: %w", productId, err)
	}

	sum, err := LedgerQtySum(tx, productId)
	if err != nil {
		return 0, err
	}
	if sum < 0 {
		return 0, fmt.Errorf("ledger sum for product %d is negative (%d); refusing to rebuild", productId, sum)
	}

	if sum != product.CurrentStock {
		if err := tx.Model(&Product{}).Where("id = ?", productId).
			Update("current_stock", sum).Error; err != nil {
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return sum, nil
}
