package models

import (
	"github.com/mmdatafocus/shoptrack_backend/config"
)

func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&ProductCategory{},
		&Product{},
		&StockMovement{},
		&SaleInvoice{},
		&SaleItem{},
	)
}
