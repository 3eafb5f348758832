package models_test

import (
	"strings"
	"testing"

	"github.com/mmdatafocus/shoptrack_backend/models"
)

func TestMovementKindSignRules(t *testing.T) {
	if !models.MovementKindManualIn.Inbound() {
		t.Fatalf("manual_in should be inbound")
	}
	if models.MovementKindSale.Inbound() || models.MovementKindManualOut.Inbound() {
		t.Fatalf("sale and manual_out should be outbound")
	}
	if models.MovementKind("purchase").Valid() {
		t.Fatalf("unknown kind should be invalid")
	}
}

func TestStockMovementBeforeSave_RejectsSignMismatch(t *testing.T) {
	invoiceId := 1
	cases := []struct {
		name     string
		movement models.StockMovement
		wantErr  string
	}{
		{
			name:     "zero qty",
			movement: models.StockMovement{ProductId: 1, Qty: 0, Kind: models.MovementKindManualIn},
			wantErr:  "cannot be zero",
		},
		{
			name:     "negative manual_in",
			movement: models.StockMovement{ProductId: 1, Qty: -5, Kind: models.MovementKindManualIn},
			wantErr:  "positive qty",
		},
		{
			name:     "positive manual_out",
			movement: models.StockMovement{ProductId: 1, Qty: 5, Kind: models.MovementKindManualOut},
			wantErr:  "negative qty",
		},
		{
			name:     "positive sale",
			movement: models.StockMovement{ProductId: 1, Qty: 5, Kind: models.MovementKindSale, SaleInvoiceId: &invoiceId},
			wantErr:  "negative qty",
		},
		{
			name:     "sale without invoice",
			movement: models.StockMovement{ProductId: 1, Qty: -5, Kind: models.MovementKindSale},
			wantErr:  "invoice reference",
		},
		{
			name:     "unknown kind",
			movement: models.StockMovement{ProductId: 1, Qty: 5, Kind: "purchase"},
			wantErr:  "invalid movement kind",
		},
	}
	for _, tc := range cases {
		err := tc.movement.BeforeSave(nil)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: expected error containing %q; got %q", tc.name, tc.wantErr, err.Error())
		}
	}

	valid := []models.StockMovement{
		{ProductId: 1, Qty: 5, Kind: models.MovementKindManualIn},
		{ProductId: 1, Qty: -5, Kind: models.MovementKindManualOut},
		{ProductId: 1, Qty: -5, Kind: models.MovementKindSale, SaleInvoiceId: &invoiceId},
	}
	for _, m := range valid {
		if err := m.BeforeSave(nil); err != nil {
			t.Fatalf("expected valid movement %+v; got %v", m, err)
		}
	}
}

func TestStockMovementImmutable(t *testing.T) {
	m := models.StockMovement{ProductId: 1, Qty: 5, Kind: models.MovementKindManualIn}
	if err := m.BeforeUpdate(nil); err == nil {
		t.Fatalf("expected update to be rejected")
	}
	if err := m.BeforeDelete(nil); err == nil {
		t.Fatalf("expected delete to be rejected")
	}
}
