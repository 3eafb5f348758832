package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/shoptrack_backend/middlewares"
	"github.com/mmdatafocus/shoptrack_backend/models"
)

func registerSalesRoutes(r *gin.Engine) {
	sales := r.Group("/sales/invoices", middlewares.RequireAuth())
	sales.POST("", createSaleInvoiceHandler())
	sales.GET("", listSaleInvoicesHandler())
	sales.GET("/:id", getSaleInvoiceHandler())
	sales.DELETE("/:id", middlewares.RequireAdmin(), archiveSaleInvoiceHandler())
}

func createSaleInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSaleInvoice
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		invoice, err := models.CreateSaleInvoice(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "handlers_sales.go", "createSaleInvoiceHandler", err)
			return
		}
		c.JSON(http.StatusCreated, invoice)
	}
}

func listSaleInvoicesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		invoices, err := models.GetSaleInvoices(c.Request.Context())
		if err != nil {
			respondError(c, "handlers_sales.go", "listSaleInvoicesHandler", err)
			return
		}
		c.JSON(http.StatusOK, invoices)
	}
}

func getSaleInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
			return
		}

		invoice, err := models.GetSaleInvoice(c.Request.Context(), id)
		if err != nil {
			respondError(c, "handlers_sales.go", "getSaleInvoiceHandler", err)
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}

func archiveSaleInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
			return
		}

		if err := models.ArchiveSaleInvoice(c.Request.Context(), id); err != nil {
			respondError(c, "handlers_sales.go", "archiveSaleInvoiceHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "archived": true})
	}
}
