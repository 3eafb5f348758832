package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/shoptrack_backend/config"
	"github.com/mmdatafocus/shoptrack_backend/utils"
)

// respondError maps the model layer's error taxonomy onto HTTP statuses.
// Validation failures and unknown products are the caller's fault (400),
// lookup misses are 404, stock shortages are conflicts (409); anything else
// is logged and surfaces as a 500 without leaking internals.
func respondError(c *gin.Context, moduleName string, functionName string, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidInput) || utils.IsUnknownProduct(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case utils.IsInsufficientStock(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		config.LogError(config.GetLogger(), moduleName, functionName, "unhandled error", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
