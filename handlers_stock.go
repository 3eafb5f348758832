package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/shoptrack_backend/middlewares"
	"github.com/mmdatafocus/shoptrack_backend/models"
)

func registerStockRoutes(r *gin.Engine) {
	stock := r.Group("/stock")
	stock.POST("/in", middlewares.RequireAdmin(), stockInHandler())
	stock.POST("/out", middlewares.RequireAdmin(), stockOutHandler())
	stock.GET("/low", middlewares.RequireAuth(), lowStockHandler())
	stock.GET("/movements/:productId", middlewares.RequireAuth(), stockMovementsHandler())
}

type stockAdjustRequest struct {
	ProductId int `json:"product_id" binding:"required"`
	Qty       int `json:"quantity" binding:"required"`
}

func stockInHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stockAdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		product, err := models.StockIn(c.Request.Context(), req.ProductId, req.Qty)
		if err != nil {
			respondError(c, "handlers_stock.go", "stockInHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product_id":    product.ID,
			"current_stock": product.CurrentStock,
		})
	}
}

func stockOutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stockAdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		product, err := models.StockOut(c.Request.Context(), req.ProductId, req.Qty)
		if err != nil {
			respondError(c, "handlers_stock.go", "stockOutHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product_id":    product.ID,
			"current_stock": product.CurrentStock,
		})
	}
}

func lowStockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryId *int
		if raw := c.Query("category_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
				return
			}
			categoryId = &id
		}

		products, err := models.GetLowStockProducts(c.Request.Context(), categoryId)
		if err != nil {
			respondError(c, "handlers_stock.go", "lowStockHandler", err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func stockMovementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		productId, err := strconv.Atoi(c.Param("productId"))
		if err != nil || productId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		movements, err := models.GetStockMovements(c.Request.Context(), productId)
		if err != nil {
			respondError(c, "handlers_stock.go", "stockMovementsHandler", err)
			return
		}
		c.JSON(http.StatusOK, movements)
	}
}
