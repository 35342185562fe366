package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"
)

// respondResourceError maps service errors onto the resource endpoints'
// {success, message} envelope.
func respondResourceError(c *gin.Context, logger *zap.Logger, logMsg string, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		body := gin.H{"success": false, "message": svcErr.Message}
		if len(svcErr.Fields) > 0 {
			body["errors"] = svcErr.Fields
		}
		c.JSON(svcErr.Status, body)
		return
	}
	if logger != nil {
		logger.Error(logMsg, zap.Error(err), zap.String("path", c.FullPath()))
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}

func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}
