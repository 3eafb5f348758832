package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mmdatafocus/shoptrack_backend/config"
	"github.com/mmdatafocus/shoptrack_backend/models"
)

// Recomputes the cached current_stock of one or all products from the
// movement ledger. Run after a suspected cache drift; the ledger is the
// source of truth.
func main() {
	productID := flag.Int("product-id", 0, "Optional: rebuild a single product")
	flag.Parse()

	_ = godotenv.Load()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	ctx := context.Background()

	var productIds []int
	if *productID > 0 {
		productIds = append(productIds, *productID)
	} else {
		if err := db.Model(&models.Product{}).Order("id").Pluck("id", &productIds).Error; err != nil {
			fmt.Fprintf(os.Stderr, "discover products: %v\n", err)
			os.Exit(1)
		}
	}

	for _, id := range productIds {
		stock, err := models.RebuildProductStock(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rebuild failed for product %d: %v\n", id, err)
			os.Exit(1)
		}
		fmt.Printf("product=%d current_stock=%d\n", id, stock)
	}

	fmt.Println("stock rebuild complete")
}
