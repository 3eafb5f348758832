package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mmdatafocus/shoptrack_backend/config"
	"github.com/mmdatafocus/shoptrack_backend/models"
	"github.com/mmdatafocus/shoptrack_backend/utils"
	"github.com/shopspring/decimal"
)

// Seeds a local database with a small catalog and prints dev tokens for an
// admin and a staff user. Development only.
func main() {
	_ = godotenv.Load()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	if err := models.MigrateTable(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	categories := []models.ProductCategory{
		{Name: "Phones"},
		{Name: "Accessories"},
		{Name: "Repair Parts"},
	}
	for i := range categories {
		if err := db.Where("name = ?", categories[i].Name).
			FirstOrCreate(&categories[i]).Error; err != nil {
			fmt.Fprintf(os.Stderr, "seed category %s: %v\n", categories[i].Name, err)
			os.Exit(1)
		}
	}

	products := []models.NewProduct{
		{Sku: "PHN-A54-128", Name: "Galaxy A54 128GB", Brand: "Samsung", Model: "A54", CategoryId: categories[0].ID, PurchasePrice: decimal.NewFromInt(21000), SellingPrice: decimal.NewFromInt(24500), WarrantyMonths: 12, MinStock: 3},
		{Sku: "ACC-CASE-A54", Name: "A54 Silicone Case", Brand: "Samsung", CategoryId: categories[1].ID, PurchasePrice: decimal.NewFromInt(250), SellingPrice: decimal.NewFromInt(499), MinStock: 10},
		{Sku: "PRT-SCR-A54", Name: "A54 Screen Assembly", CategoryId: categories[2].ID, PurchasePrice: decimal.NewFromInt(3200), SellingPrice: decimal.NewFromInt(4500), MinStock: 2},
	}
	for _, input := range products {
		product, err := models.CreateProduct(ctx, &input)
		if err != nil {
			// Re-running the seeder is fine; existing SKUs are skipped.
			fmt.Printf("skip %s: %v\n", input.Sku, err)
			continue
		}
		if _, err := models.StockIn(ctx, product.ID, 10); err != nil {
			fmt.Fprintf(os.Stderr, "opening stock for %s: %v\n", input.Sku, err)
			os.Exit(1)
		}
		fmt.Printf("seeded %s (id=%d, stock=10)\n", product.Sku, product.ID)
	}

	adminToken, err := utils.JwtGenerate(1, "dev-admin", utils.RoleAdmin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin token: %v\n", err)
		os.Exit(1)
	}
	staffToken, err := utils.JwtGenerate(2, "dev-staff", "staff")
	if err != nil {
		fmt.Fprintf(os.Stderr, "staff token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("admin token:", adminToken)
	fmt.Println("staff token:", staffToken)
}
