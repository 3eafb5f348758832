package models_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mmdatafocus/shoptrack_backend/models"
	"github.com/mmdatafocus/shoptrack_backend/utils"
)

func TestNewSaleInvoiceValidate(t *testing.T) {
	cases := []struct {
		name    string
		input   models.NewSaleInvoice
		wantErr string
	}{
		{
			name:    "no items",
			input:   models.NewSaleInvoice{},
			wantErr: "at least one item",
		},
		{
			name: "zero quantity",
			input: models.NewSaleInvoice{
				Items: []models.NewSaleItem{{ProductId: 1, Qty: 0}},
			},
			wantErr: "positive integer",
		},
		{
			name: "negative quantity",
			input: models.NewSaleInvoice{
				Items: []models.NewSaleItem{{ProductId: 1, Qty: -3}},
			},
			wantErr: "positive integer",
		},
		{
			name: "missing product id",
			input: models.NewSaleInvoice{
				Items: []models.NewSaleItem{{Qty: 1}},
			},
			wantErr: "product_id is required",
		},
		{
			name: "bad payment mode",
			input: models.NewSaleInvoice{
				PaymentMode: "Cheque",
				Items:       []models.NewSaleItem{{ProductId: 1, Qty: 1}},
			},
			wantErr: "payment mode",
		},
		{
			name: "second line invalid",
			input: models.NewSaleInvoice{
				Items: []models.NewSaleItem{
					{ProductId: 1, Qty: 2},
					{ProductId: 2, Qty: 0},
				},
			},
			wantErr: "product 2",
		},
	}
	for _, tc := range cases {
		err := tc.input.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, utils.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput; got %v", tc.name, err)
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: expected error containing %q; got %q", tc.name, tc.wantErr, err.Error())
		}
	}

	ok := models.NewSaleInvoice{
		CustomerName: "Walk-in",
		PaymentMode:  models.PaymentModeCash,
		Items: []models.NewSaleItem{
			{ProductId: 1, Qty: 2},
			{ProductId: 1, Qty: 1},
			{ProductId: 2, Qty: 5},
		},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid input; got %v", err)
	}

	// Blank payment mode is permitted; it means unrecorded.
	blank := models.NewSaleInvoice{
		Items: []models.NewSaleItem{{ProductId: 1, Qty: 1}},
	}
	if err := blank.Validate(); err != nil {
		t.Fatalf("expected blank payment mode to pass; got %v", err)
	}
}
