package models

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mmdatafocus/shoptrack_backend/config"
	"github.com/mmdatafocus/shoptrack_backend/utils"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("shoptrack-backend")

// SaleInvoice is created whole in a single transaction or not at all. Unit
// prices are snapshotted from the catalog at creation time and never change
// afterwards, regardless of later price edits.
type SaleInvoice struct {
	ID              int             `gorm:"primary_key" json:"id"`
	CustomerName    string          `gorm:"size:150;default:null" json:"customer_name"`
	CustomerPhone   string          `gorm:"size:20;default:null" json:"customer_phone"`
	PaymentMode     PaymentMode     `gorm:"type:enum('Cash','UPI','Card','Other');default:null" json:"payment_mode"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CreatedByUserId int             `gorm:"index;default:null" json:"created_by_user_id"`
	IsActive        *bool           `gorm:"not null;default:true" json:"is_active"`
	Items           []SaleItem      `gorm:"foreignKey:SaleInvoiceId" json:"items"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type SaleItem struct {
	ID            int             `gorm:"primary_key" json:"id"`
	SaleInvoiceId int             `gorm:"index;not null" json:"sale_invoice_id"`
	ProductId     int             `gorm:"index;not null" json:"product_id"`
	Qty           int             `gorm:"not null" json:"qty"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewSaleInvoice struct {
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	PaymentMode   PaymentMode   `json:"payment_mode"`
	Items         []NewSaleItem `json:"items" binding:"required"`
}

type NewSaleItem struct {
	ProductId int `json:"product_id" binding:"required"`
	Qty       int `json:"quantity" binding:"required"`
}

func (input *NewSaleInvoice) Validate() error {
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: invoice needs at least one item", utils.ErrInvalidInput)
	}
	for _, item := range input.Items {
		if item.ProductId <= 0 {
			return fmt.Errorf("%w: item product_id is required", utils.ErrInvalidInput)
		}
		if item.Qty <= 0 {
			return fmt.Errorf("%w: quantity for product %d must be a positive integer", utils.ErrInvalidInput, item.ProductId)
		}
	}
	if err := validatePaymentMode(input.PaymentMode); err != nil {
		return fmt.Errorf("%w: %s", utils.ErrInvalidInput, err.Error())
	}
	return nil
}

// CreateSaleInvoice validates and commits a multi-item sale as one atomic
// operation: stock checks, stock decrements, ledger appends and the invoice
// itself either all land or none do.
//
// All touched product rows are locked in ascending id order before any check,
// so two concurrent invoices over the same product serialize and oversell is
// impossible; invoices over disjoint products proceed in parallel.
func CreateSaleInvoice(ctx context.Context, input *NewSaleInvoice) (*SaleInvoice, error) {
	db := config.GetDB()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "CreateSaleInvoice")
	defer span.End()

	productIds := make([]int, 0, len(input.Items))
	for _, item := range input.Items {
		productIds = append(productIds, item.ProductId)
	}
	productIds = utils.UniqueSlice(productIds)
	sort.Ints(productIds)

	// Best-effort redis locks, taken in the same ascending order as the row
	// locks below. Never required for correctness.
	for _, id := range productIds {
		release, _ := utils.StockLock(ctx, id, "salesInvoice.go", "CreateSaleInvoice")
		defer release()
	}

	tx := db.WithContext(ctx).Begin()
	// Always rollback on early-return or panic so no partial invoice, stock
	// decrement or ledger row ever becomes visible.
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	products, err := lockProductsForUpdate(tx, productIds)
	if err != nil {
		return nil, err
	}

	// Reservation per product so duplicate lines for the same product cannot
	// jointly over-consume stock that each line individually fits into.
	reserved := make(map[int]int, len(products))
	items := make([]SaleItem, 0, len(input.Items))
	total := decimal.Zero
	for _, line := range input.Items {
		product, ok := products[line.ProductId]
		if !ok {
			return nil, &utils.UnknownProductError{ProductId: line.ProductId}
		}
		available := product.CurrentStock - reserved[product.ID]
		if available < line.Qty {
			return nil, &utils.InsufficientStockError{
				ProductId:   product.ID,
				ProductName: product.Name,
				Requested:   line.Qty,
				Available:   available,
			}
		}
		reserved[product.ID] += line.Qty

		lineTotal := product.SellingPrice.Mul(decimal.NewFromInt(int64(line.Qty)))
		items = append(items, SaleItem{
			ProductId:   product.ID,
			Qty:         line.Qty,
			UnitPrice:   product.SellingPrice,
			TotalAmount: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	invoice := SaleInvoice{
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		PaymentMode:     input.PaymentMode,
		TotalAmount:     total,
		CreatedByUserId: userId,
		IsActive:        utils.NewTrue(),
		Items:           items,
	}
	if err := tx.Create(&invoice).Error; err != nil {
		return nil, err
	}

	// One sale movement per line, negative delta, referencing the invoice.
	for i := range invoice.Items {
		item := &invoice.Items[i]
		if err := applyStockDelta(tx, item.ProductId, -item.Qty, MovementKindSale, &invoice.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// SaleInvoiceView resolves product name/SKU onto each line for the read
// boundary. Archived products stay resolvable here: history outlives the
// catalog entry.
type SaleInvoiceView struct {
	ID            int             `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []SaleItemView  `json:"items"`
}

type SaleItemView struct {
	ProductId   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSku  string          `json:"product_sku"`
	Qty         int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total"`
}

// GetSaleInvoice returns a full invoice. Archived invoices surface as a
// lookup miss; the visibility predicate is applied here, at the read
// boundary, not per caller.
func GetSaleInvoice(ctx context.Context, id int) (*SaleInvoiceView, error) {
	db := config.GetDB()

	var invoice SaleInvoice
	if err := db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND is_active = ?", id, true).
		First(&invoice).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	productIds := make([]int, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		productIds = append(productIds, item.ProductId)
	}
	var products []*Product
	if err := db.WithContext(ctx).Where("id IN ?", utils.UniqueSlice(productIds)).
		Find(&products).Error; err != nil {
		return nil, err
	}
	byId := make(map[int]*Product, len(products))
	for _, p := range products {
		byId[p.ID] = p
	}

	view := SaleInvoiceView{
		ID:            invoice.ID,
		CustomerName:  invoice.CustomerName,
		CustomerPhone: invoice.CustomerPhone,
		PaymentMode:   invoice.PaymentMode,
		TotalAmount:   invoice.TotalAmount,
		CreatedAt:     invoice.CreatedAt,
		Items:         make([]SaleItemView, 0, len(invoice.Items)),
	}
	for _, item := range invoice.Items {
		itemView := SaleItemView{
			ProductId:   item.ProductId,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
			TotalAmount: item.TotalAmount,
		}
		if p, ok := byId[item.ProductId]; ok {
			itemView.ProductName = p.Name
			itemView.ProductSku = p.Sku
		}
		view.Items = append(view.Items, itemView)
	}
	return &view, nil
}

// GetSaleInvoices lists non-archived invoices, newest first.
func GetSaleInvoices(ctx context.Context) ([]*SaleInvoice, error) {
	db := config.GetDB()
	var invoices []*SaleInvoice
	if err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// ArchiveSaleInvoice soft-deletes an invoice. Idempotent; the stock effect
// of the sale is NOT reversed. The goods already left the shelf and the
// ledger is append-only; a correction is a manual_in adjustment.
func ArchiveSaleInvoice(ctx context.Context, id int) error {
	db := config.GetDB()

	var invoice SaleInvoice
	if err := db.WithContext(ctx).First(&invoice, id).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	if invoice.IsActive != nil && !*invoice.IsActive {
		return nil
	}
	return db.WithContext(ctx).Model(&invoice).Update("is_active", false).Error
}
