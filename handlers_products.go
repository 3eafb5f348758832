package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/shoptrack_backend/middlewares"
	"github.com/mmdatafocus/shoptrack_backend/models"
)

func registerProductRoutes(r *gin.Engine) {
	products := r.Group("/products", middlewares.RequireAuth())
	products.POST("", middlewares.RequireAdmin(), createProductHandler())
	products.GET("", listProductsHandler())
	products.GET("/:id", getProductHandler())
	products.DELETE("/:id", middlewares.RequireAdmin(), archiveProductHandler())
}

func createProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		product, err := models.CreateProduct(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "handlers_products.go", "createProductHandler", err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func listProductsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := models.GetProducts(c.Request.Context())
		if err != nil {
			respondError(c, "handlers_products.go", "listProductsHandler", err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := models.GetProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, "handlers_products.go", "getProductHandler", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func archiveProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := models.ArchiveProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, "handlers_products.go", "archiveProductHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": product.ID, "archived": true})
	}
}
