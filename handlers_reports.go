package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/shoptrack_backend/middlewares"
	"github.com/mmdatafocus/shoptrack_backend/models"
)

const defaultDailyReportDays = 30

func registerReportRoutes(r *gin.Engine) {
	reports := r.Group("/reports/sales", middlewares.RequireAuth())
	reports.GET("/daily", dailySalesHandler())
	reports.GET("/monthly", monthlySalesHandler())
}

func dailySalesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		days := defaultDailyReportDays
		if raw := c.Query("days"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
				return
			}
			days = n
		}

		entries, err := models.GetDailySales(c.Request.Context(), days)
		if err != nil {
			respondError(c, "handlers_reports.go", "dailySalesHandler", err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func monthlySalesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := models.GetMonthlySales(c.Request.Context())
		if err != nil {
			respondError(c, "handlers_reports.go", "monthlySalesHandler", err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
