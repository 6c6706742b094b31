package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/mdrobiulislam1479/ticket-point-server/internal/config"
)

func Health(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "database not connected"})
		return
	}
	if err := intconfig.DB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
