package handlers

import (
	"net/http"

	intconfig "railbook/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database unavailable"})
		return
	}

	var trains int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM trains").Scan(&trains); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query database"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "trains": trains})
}
